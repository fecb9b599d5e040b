package proto

import "github.com/invopop/jsonschema"

// InputSchema describes the input document.
func InputSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{AllowAdditionalProperties: true}
	schema := reflector.Reflect(new(Input))
	schema.Title = "River Raid input"
	schema.Description = "Latest control intent written by the client"
	return schema
}

// StateSchema describes the snapshot document.
func StateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{AllowAdditionalProperties: true}
	schema := reflector.Reflect(new(State))
	schema.Title = "River Raid state"
	schema.Description = "Authoritative world snapshot published to viewers"
	return schema
}
