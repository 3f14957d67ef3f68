package handler

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/DukeRupert/nhcadvocate/internal/site"
)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Date/Time functions
		"year": func() int {
			return time.Now().Year()
		},

		// cls merges Tailwind class lists, later classes winning conflicts.
		"cls": func(classes ...string) string {
			return twmerge.Merge(strings.Join(classes, " "))
		},
		// t looks up a home page string in the request's language.
		"t": func(lang site.Lang, key string) string {
			return site.T(lang, key)
		},

		// JSON encoding for safe JavaScript embedding
		"json": func(v interface{}) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return template.JS(`null`)
			}
			return template.JS(b)
		},

		// Conditional/Logic functions
		"ternary": func(condition bool, trueVal, falseVal interface{}) interface{} {
			if condition {
				return trueVal
			}
			return falseVal
		},

		// Collection functions
		"dict": func(values ...interface{}) map[string]interface{} {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil
				}
				dict[key] = values[i+1]
			}
			return dict
		},

		// tel: and wa.me links built from site constants.
		"safeURL": func(s string) template.URL {
			return template.URL(s)
		},
	}
}
