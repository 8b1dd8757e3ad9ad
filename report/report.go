package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/appcove/AS3/schema"
)

type renderOpts struct {
	json   bool
	colors *Colors
	source string
}

type RenderOption func(*renderOpts)

// RenderJSON renders the result as a JSON object instead of text.
func RenderJSON() RenderOption {
	return func(o *renderOpts) { o.json = true }
}

// RenderColors sets the palette for text rendering. Without it every
// part renders unstyled.
func RenderColors(c *Colors) RenderOption {
	return func(o *renderOpts) {
		if c != nil {
			o.colors = c
		}
	}
}

// RenderSource names the validated document in the text header.
func RenderSource(name string) RenderOption {
	return func(o *renderOpts) { o.source = name }
}

// Render writes a validation result to w, one violation per line in
// result order, or as JSON with RenderJSON.
func Render(w io.Writer, res *schema.Result, opts ...RenderOption) error {
	o := &renderOpts{colors: NoColors()}
	for _, opt := range opts {
		opt(o)
	}
	if o.json {
		return renderJSON(w, res)
	}
	return renderText(w, res, o)
}

func renderText(w io.Writer, res *schema.Result, o *renderOpts) error {
	c := o.colors
	prefix := ""
	if o.source != "" {
		prefix = o.source + ": "
	}
	if res.Valid() {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, c.Color(0, OKColor, "ok"))
		return err
	}
	head := fmt.Sprintf("%d violation(s)", len(res.Violations))
	if _, err := fmt.Fprintf(w, "%s%s\n", prefix, c.Color(0, HeaderColor, head)); err != nil {
		return err
	}
	for i := range res.Violations {
		v := &res.Violations[i]
		_, err := fmt.Fprintf(w, "  %s: %s [%s]\n",
			c.Color(v.Kind, PathColor, v.Path.String()),
			c.Color(v.Kind, MessageColor, v.Message),
			c.Color(v.Kind, LabelColor, v.Kind.String()))
		if err != nil {
			return err
		}
	}
	return nil
}

func renderJSON(w io.Writer, res *schema.Result) error {
	violations := res.Violations
	if violations == nil {
		violations = []schema.Violation{}
	}
	out := struct {
		Valid      bool               `json:"valid"`
		Violations []schema.Violation `json:"violations"`
	}{
		Valid:      res.Valid(),
		Violations: violations,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
