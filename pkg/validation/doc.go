// Package validation checks the shape of card documents before they reach the
// store.
//
// Card documents are validated against JSON Schemas compiled once with
// santhosh-tekuri/jsonschema. Two schemas exist: one for create requests, which
// must not depend on an id, and one for persisted cards, which must carry a
// well-formed id.
//
//	v := validation.MustCardValidator(validation.ModeCreate)
//	result, err := v.ValidateJSON(body)
//	if err != nil {
//	    // body is not JSON
//	}
//	if !result.Valid {
//	    log.Println(result.Summary())
//	}
package validation
