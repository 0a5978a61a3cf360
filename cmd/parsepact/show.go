package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/parsepact/parsepact/spec"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print a report generated by compile in a readable format",
		Example: `  parsepact show grammar-report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

const reportTemplate = `# Terminals
{{ range .Terminals }}{{ printf "%4v" .Number }}  {{ .Name }}{{ if .Precedence }}  (prec: {{ .Precedence }}, assoc: {{ .Associativity }}){{ end }}
{{ end }}
# Productions
{{ range .Productions }}{{ printf "%4v" .Number }}  {{ .LHS }} :{{ range .RHS }} {{ . }}{{ end }}{{ if .Action }}  [{{ .Action }}]{{ end }}
{{ end }}
# States
{{ range .States }}## State {{ .Number }}
{{ range .Items }}  {{ . }}
{{ end }}{{ range .Actions }}    {{ . }}
{{ end }}{{ range .SRConflicts }}    shift/reduce conflict on {{ .Symbol }} resolved by {{ .ResolvedBy }} (shift adopted: {{ .AdoptedShift }})
{{ end }}{{ range .RRConflicts }}    reduce/reduce conflict on {{ .Symbol }}: adopted production {{ .Adopted }}
{{ end }}
{{ end }}`

func runShow(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	report := &spec.Report{}
	err = json.Unmarshal(b, report)
	if err != nil {
		return fmt.Errorf("invalid report: %w", err)
	}

	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}
	return t.Execute(os.Stdout, report)
}
