package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// configSchema constrains the YAML config file. #Config is a definition, so
// it is closed: keys it does not list are rejected.
const configSchema = `
#Config: {
	db_path?:          string & !=""
	export_path?:      string & !=""
	default_priority?: "low" | "medium" | "high" | "urgent"
	color?:            "auto" | "always" | "never"
}
`

// validate checks decoded YAML against configSchema.
func validate(raw map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(configSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	value := ctx.Encode(raw)
	if err := value.Err(); err != nil {
		return err
	}

	return def.Unify(value).Validate(cue.Concrete(true))
}
