/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrSchemaViolation = errors.New("request body violates schema")

const bookingDatesSchema = `{
	"type": "object",
	"required": ["checkin", "checkout"],
	"properties": {
		"checkin": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"checkout": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"}
	}
}`

const bookingSchema = `{
	"type": "object",
	"required": ["firstname", "lastname", "totalprice", "depositpaid", "bookingdates"],
	"properties": {
		"firstname": {"type": "string"},
		"lastname": {"type": "string"},
		"totalprice": {"type": "integer"},
		"depositpaid": {"type": "boolean"},
		"bookingdates": ` + bookingDatesSchema + `,
		"additionalneeds": {"type": "string"}
	}
}`

const bookingPatchSchema = `{
	"type": "object",
	"properties": {
		"firstname": {"type": "string"},
		"lastname": {"type": "string"},
		"totalprice": {"type": "integer"},
		"depositpaid": {"type": "boolean"},
		"bookingdates": ` + bookingDatesSchema + `,
		"additionalneeds": {"type": "string"}
	}
}`

const credentialsSchema = `{
	"type": "object",
	"properties": {
		"username": {"type": "string"},
		"password": {"type": "string"}
	}
}`

// bodyValidator checks request bodies before they are decoded.
type bodyValidator struct {
	booking      *gojsonschema.Schema
	bookingPatch *gojsonschema.Schema
	credentials  *gojsonschema.Schema
}

func newBodyValidator() (*bodyValidator, error) {
	compile := func(name, source string) (*gojsonschema.Schema, error) {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
		if err != nil {
			return nil, fmt.Errorf("compiling %s schema: %w", name, err)
		}

		return schema, nil
	}

	booking, err := compile("booking", bookingSchema)
	if err != nil {
		return nil, err
	}

	bookingPatch, err := compile("booking patch", bookingPatchSchema)
	if err != nil {
		return nil, err
	}

	credentials, err := compile("credentials", credentialsSchema)
	if err != nil {
		return nil, err
	}

	v := &bodyValidator{
		booking:      booking,
		bookingPatch: bookingPatch,
		credentials:  credentials,
	}

	return v, nil
}

// decode validates the body against the schema then unmarshals it.
func decode(schema *gojsonschema.Schema, body []byte, out any) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}

	if !result.Valid() {
		return fmt.Errorf("%w: %s", ErrSchemaViolation, describe(result.Errors()))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshaling request body: %w", err)
	}

	return nil
}

func describe(resultErrors []gojsonschema.ResultError) string {
	messages := make([]string, len(resultErrors))

	for i, resultError := range resultErrors {
		messages[i] = resultError.String()
	}

	return strings.Join(messages, "; ")
}
