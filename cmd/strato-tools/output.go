package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ashwinyue/strato-tools/internal/model"
)

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printTools(w io.Writer, tools []model.Tool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCATEGORIES\tFLAGS")
	for _, t := range tools {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Price.Type, strings.Join(t.Category, ", "), flags(t))
	}
	return tw.Flush()
}

func flags(t model.Tool) string {
	var out []string
	if t.Popular {
		out = append(out, "popular")
	}
	if t.IsNew {
		out = append(out, "new")
	}
	if t.HasIntegrations() {
		out = append(out, "integrations")
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ",")
}
