package cmd

import (
	"context"
	"fmt"

	"github.com/ardanlabs/powledger/app/services/node/handlers/v1/public"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	sender   string
	receiver string
	amount   float64
)

func init() {
	rootCmd.AddCommand(genesisCmd, sendCmd, sealCmd, chainCmd, poolCmd, verifyCmd, identityCmd)

	sendCmd.Flags().StringVarP(&sender, "from", "f", "", "Name of the party paying.")
	sendCmd.Flags().StringVarP(&receiver, "to", "t", "", "Name of the party being paid.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to send.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Create the genesis block.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		blk, err := newClient(url).genesis(ctx)
		if err != nil {
			return err
		}

		pterm.Success.Println("genesis block created")
		printBlock(blk)
		return nil
	},
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the pending pool.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		ntx := public.NewTx{
			Sender:   sender,
			Receiver: receiver,
			Amount:   &amount,
		}

		tx, err := newClient(url).submit(ctx, ntx)
		if err != nil {
			return err
		}

		pterm.Success.Printfln("transaction %d added to the pending pool", tx.Index)
		printTxs([]public.Tx{tx})
		return nil
	},
}

var sealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Seal the pending pool into a new block.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		spinner, _ := pterm.DefaultSpinner.Start("sealing block")

		blk, err := newClient(url).seal(ctx)
		if err != nil {
			spinner.Fail("seal failed")
			return err
		}

		spinner.Success(fmt.Sprintf("block %d sealed", blk.Number))
		printBlock(blk)
		return nil
	},
}

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print every block in the chain.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		blocks, err := newClient(url).chain(ctx)
		if err != nil {
			return err
		}

		if len(blocks) == 0 {
			pterm.Warning.Println("chain not initialized")
			return nil
		}

		for _, blk := range blocks {
			printBlock(blk)
		}
		return nil
	},
}

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Print the pending pool.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		trans, err := newClient(url).pool(ctx)
		if err != nil {
			return err
		}

		if len(trans) == 0 {
			pterm.Info.Println("pending pool is empty")
			return nil
		}

		printTxs(trans)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Ask the node to verify the whole chain.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		v, err := newClient(url).verify(ctx)
		if err != nil {
			return err
		}

		pterm.Success.Printfln("chain %s: %d blocks verified", v.Status, v.Blocks)
		return nil
	},
}

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Print the signing identity of the node.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		id, err := newClient(url).identity(ctx)
		if err != nil {
			return err
		}

		pterm.DefaultTable.WithData(pterm.TableData{
			{"Scheme", id.Scheme},
			{"Account", id.Account},
			{"Difficulty", fmt.Sprint(id.Difficulty)},
			{"Auto Seal", fmt.Sprint(id.AutoSeal)},
		}).Render()
		pterm.Println(id.PublicKey)
		return nil
	},
}
