package diagram

import "github.com/matzehuels/mindtower/pkg/errors"

func unknownNode(id string) error {
	return errors.New(errors.ErrCodeNotFound, "node %q not found", id)
}
