package atlas

import "errors"

// ErrUnknownTheme signals a dataset configured against a theme catalog that
// does not exist in the tree.
var ErrUnknownTheme = errors.New("unknown theme catalog")
