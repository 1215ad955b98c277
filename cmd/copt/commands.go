package main

import (
	"encoding/json"
	"fmt"

	"copt/engine/actors"
	"copt/state"
	"copt/state/persistence"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var current *state.State

func openState() {
	// Various aspects of this application require global and local settings. To keep things
	// clean and tidy we put these settings in a Viper configuration.
	conf := viper.New()
	actors.InitConfig(conf)
	actors.SetConfig(conf)
	current = state.Open(persistence.NewStore(actors.Directory(conf.GetString("ledgerMind"))))
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func RootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "copt",
		Short:         "COPT payment ledger for residents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			openState()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	var id uint32
	var name, wallet string
	addResident := &cobra.Command{
		Use:   "add-resident",
		Short: "register a resident and generate their signing key",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := current.AddResident(state.Admin(), id, name, wallet)
			if err != nil {
				return err
			}
			fmt.Printf("Resident %d added with a newly generated private key.\nPublic Key: %s\nSeed Words: %s\n", reg.Resident.ID, reg.PublicKey, reg.SeedWords)
			return nil
		},
	}
	addResident.Flags().Uint32Var(&id, "id", 0, "resident id")
	addResident.Flags().StringVar(&name, "name", "", "resident name")
	addResident.Flags().StringVar(&wallet, "wallet", "", "wallet reference: lightning address, LNURL or any opaque id")
	addResident.MarkFlagRequired("id")
	addResident.MarkFlagRequired("name")
	addResident.MarkFlagRequired("wallet")
	rootCmd.AddCommand(addResident)

	var chargeID uint32
	var chargeName string
	var amount uint64
	charge := &cobra.Command{
		Use:   "charge",
		Short: "record a payment and anchor it in a new block",
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := current.Authenticate(chargeID, chargeName)
			if err != nil {
				return err
			}
			block, err := current.Charge(caller, chargeID, amount)
			if err != nil {
				return err
			}
			return printJSON(block)
		},
	}
	charge.Flags().Uint32Var(&chargeID, "id", 0, "resident id")
	charge.Flags().StringVar(&chargeName, "name", "", "resident name, as registered")
	charge.Flags().Uint64Var(&amount, "amount", 0, "amount in COPT")
	charge.MarkFlagRequired("id")
	charge.MarkFlagRequired("name")
	charge.MarkFlagRequired("amount")
	rootCmd.AddCommand(charge)

	var reportID uint32
	var reportName string
	report := &cobra.Command{
		Use:   "report",
		Short: "show one resident's balance and payments, or every resident's balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("id") {
				return printJSON(map[string]interface{}{"summary": current.Summary()})
			}
			caller, err := current.Authenticate(reportID, reportName)
			if err != nil {
				return err
			}
			r, err := current.Report(caller, reportID)
			if err != nil {
				return err
			}
			return printJSON(r)
		},
	}
	report.Flags().Uint32Var(&reportID, "id", 0, "resident id")
	report.Flags().StringVar(&reportName, "name", "", "resident name, as registered")
	rootCmd.AddCommand(report)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "chain",
		Short: "print every block",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(map[string]interface{}{"chain": current.Chain()})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "check block hashes, links and transaction signatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.VerifyChain(); err != nil {
				return err
			}
			fmt.Printf("chain of %d blocks is intact\n", len(current.Chain()))
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "console",
		Short: "view the current state with single key presses",
		Run: func(cmd *cobra.Command, args []string) {
			terminate := make(chan struct{})
			actors.SetTerminateChan(terminate)
			current.Start(terminate, actors.GetWaitGroup())
			go cliListener(terminate)
			<-actors.GetTerminateChan()
			actors.GetWaitGroup().Wait()
		},
	})
	return rootCmd
}
