package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edrbo/internal/logging"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/pipeline"
)

var parseCmd = &cobra.Command{
	Use:   "parse <founder record>",
	Short: "Categorize a single founder record",
	Long: `Run one founder string through the full pipeline and print the
extracted facts as indented JSON. Useful for debugging dictionary edits
against a specific record.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
	Example: `  edrbo parse "Іванов Іван Іванович, Україна, м. Київ, розмір частки 100%"
  edrbo parse "кінцевий бенефіціарний власник відсутній"`,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logging.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	pipe, err := pipeline.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	res := pipe.ProcessCompany(ctx, model.CompanyRecord{
		EDRPOU:   "00000000",
		Founders: []string{args[0]},
	})

	data, err := json.MarshalIndent(res.Facts, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
