package structured

import (
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("structured")
