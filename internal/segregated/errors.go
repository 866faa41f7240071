package segregated

import cerrors "github.com/cockroachdb/errors"

func errf(format string, args ...interface{}) error {
	return cerrors.Newf("segregated: "+format, args...)
}
