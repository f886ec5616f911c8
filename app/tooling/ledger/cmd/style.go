package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ardanlabs/powledger/app/services/node/handlers/v1/public"
	"github.com/pterm/pterm"
)

// printBlock renders a block header in a box followed by its transactions.
func printBlock(blk public.Block) {
	pbox := pterm.DefaultBox.WithHorizontalPadding(2)

	title := fmt.Sprintf("|BLOCK %d|", blk.Number)
	if blk.Number == 0 {
		title = "|GENESIS|"
	}

	info := pterm.Sprintfln("Hash:       %s", pterm.LightGreen(blk.Hash)) +
		pterm.Sprintfln("Previous:   %s", blk.PrevBlockHash) +
		pterm.Sprintfln("Merkle:     %s", blk.MerkleRoot) +
		pterm.Sprintfln("Timestamp:  %d", blk.TimeStamp) +
		pterm.Sprintf("Nonce:      %d (difficulty %d)", blk.Nonce, blk.Difficulty)

	pbox.WithTitle(pterm.LightYellow(title)).WithTitleTopCenter().Println(info)

	if len(blk.Transactions) > 0 {
		printTxs(blk.Transactions)
	}
}

// printTxs renders transactions as a table.
func printTxs(trans []public.Tx) {
	data := pterm.TableData{
		{"Index", "Sender", "Receiver", "Amount", "Signature"},
	}

	for _, tx := range trans {
		data = append(data, []string{
			strconv.FormatUint(tx.Index, 10),
			tx.Sender,
			tx.Receiver,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			shorten(tx.Signature),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printError reports a failure, using the node code when there is one.
func printError(err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		pterm.Error.Printfln("%s (%s)", apiErr.Response.Error, pterm.LightRed(apiErr.Code))
		return
	}

	pterm.Error.Println(err)
}

func shorten(s string) string {
	const max = 18
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
