package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/itchyny/gojq"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/simp-lee/odnoklassniki"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult writes v as JSON, or the results of expr applied to v when
// expr is set. String results are written without quotes.
func printResult(ctx context.Context, w io.Writer, v any, expr string) error {
	if expr == "" {
		return printJSON(w, v)
	}
	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("parse --jq: %w", err)
	}
	input, err := normalize(v)
	if err != nil {
		return err
	}

	iter := query.RunWithContext(ctx, input)
	for {
		out, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, ok := out.(error); ok {
			if herr, ok := err.(*gojq.HaltError); ok && herr.Value() == nil {
				return nil
			}
			return fmt.Errorf("--jq: %w", err)
		}
		if s, ok := out.(string); ok {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
			continue
		}
		if err := printJSON(w, out); err != nil {
			return err
		}
	}
}

// normalize round-trips v through JSON so gojq sees only plain maps,
// slices and scalars.
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// printUserTable renders the main profile fields as a two-column table.
func printUserTable(w io.Writer, u *odnoklassniki.UserInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"uid", u.UID},
		{"name", u.Name},
		{"gender", u.Gender},
		{"birthday", u.Birthday},
		{"locale", u.Locale},
		{"city", u.Location.City},
		{"country", u.Location.Country},
		{"pic", u.Pic1},
	})
	t.Render()
}
