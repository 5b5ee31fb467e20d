package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var schemaURI string

// schemaCmd only establishes the table and indexes.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the teach_qa table and its indexes",
	Long: `Ensure the teach_qa table, the unique index on question and the search index exist.
Running it again is a no-op. Conflicting existing indexes are reported and left alone.`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaURI, "uri", "", "Database URI (overrides config/uris.json and DATABASE_URI)")
	RootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.connect(schemaURI, true); err != nil {
		return err
	}

	svc := s.service()
	if err := svc.EnsureSchema(context.Background()); err != nil {
		return err
	}

	decl := svc.Schema()
	fmt.Fprintf(cmd.OutOrStdout(), "Schema ready: %s\n", decl.Collection)
	for _, idx := range decl.Indexes {
		fmt.Fprintf(cmd.OutOrStdout(), "   • %s (%s) on %v\n", idx.Name, idx.Kind, idx.Fields)
	}
	return nil
}
