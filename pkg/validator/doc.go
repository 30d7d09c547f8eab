// Package validator provides composable validation rules for request input.
//
// A Rule pairs a check with the field error reported when the check fails.
// Apply runs a set of rules and collects every failure into a
// ValidationErrors value, so a response can report all invalid fields at
// once instead of stopping at the first:
//
//	err := validator.Apply(
//		validator.ValidUsername("username", req.Username),
//		validator.ValidEmail("email", req.Email),
//		validator.StrongPassword("password", req.Password),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		// render field errors
//	}
//
// The rule set is intentionally small: it covers exactly the fields the
// registration and profile endpoints accept.
package validator
