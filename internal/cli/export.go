package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grappleflow/grappleflow/internal/store"
)

func init() {
	export := &cobra.Command{
		Use:   "export",
		Short: "Export the whole journal as JSON",
		Long:  "Export sessions, challenges, lab entries and chat history as a single JSON document on stdout.",
		Run:   runExport,
	}

	imp := &cobra.Command{
		Use:   "import",
		Short: "Import a journal export",
		Long:  "Replace the current state with an export read from stdin. Expects the format produced by export.",
		Run:   runImport,
	}

	RootCmd.AddCommand(export, imp)
}

func runExport(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	b, _ := json.MarshalIndent(s.ExportAll(), "", "  ")
	fmt.Println(string(b))
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var ex store.Export
	if err := json.Unmarshal(data, &ex); err != nil {
		exitErr("parse json", err)
	}

	s, _ := openStore()
	imported, err := s.Import(ex)
	if err != nil {
		exitErr("import", err)
	}
	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
