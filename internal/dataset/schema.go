package dataset

import (
	_ "embed"
	"strings"
	"sync"
	"unicode"

	"github.com/woozymasta/touristmeta/internal/geo"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// placeIDFormatChecker implements gojsonschema.FormatChecker for place_id.
// Place ids are used as URL path segments and file names.
type placeIDFormatChecker struct{}

// IsFormat validates that the input is a non-empty id without slashes or whitespace.
func (placeIDFormatChecker) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return false
	}
	if s == "" || strings.ContainsAny(s, `/\`) {
		return false
	}

	return strings.IndexFunc(s, unicode.IsSpace) < 0
}

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	gojsonschema.FormatCheckers.Add("place_id", placeIDFormatChecker{})
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// validate checks standard JSON bytes against the dataset schema.
func validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &geo.MalformedDatasetError{Reasons: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}

	return &geo.MalformedDatasetError{Reasons: reasons}
}
