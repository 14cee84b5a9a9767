package inline

import (
	"encoding/json"
	"reflect"

	"github.com/gxplayer/gxplayer/player"
	"github.com/invopop/jsonschema"
)

type Output struct {
	// At is the requested position, empty when none was given.
	At     string        `json:"at,omitempty" jsonschema:"description=Position the media was seeked to before the report was taken."`
	Report player.Report `json:"report"`
}

func asJson(report player.Report, options *Options) ([]byte, error) {
	output := &Output{Report: report}
	if at, ok := options.At.Get(); ok {
		output.At = at.String()
	}

	return json.Marshal(output)
}

// Schema returns the JSON schema of the inline output.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		switch name := t.Name(); name {
		case "Report", "State", "Output":
			return "gxplayer." + name
		default:
			return name
		}
	}

	return reflector.Reflect(&Output{})
}
