package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/protodoc/encode"
	"github.com/signadot/protodoc/ir"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = newLogger()

func newLogger() *zap.SugaredLogger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), zapcore.DebugLevel)
	return zap.New(core).Named("debug").Sugar()
}

// Logf logs a debug message.  *ir.Node arguments are rendered as compact
// JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		x, ok := args[i].(*ir.Node)
		if !ok {
			continue
		}
		if x == nil {
			args[i] = "<absent>"
			continue
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(x, buf, encode.EncodeCompact(true)); err != nil {
			args[i] = fmt.Sprintf("[raw *ir.Node] %v", x.Type)
			continue
		}
		args[i] = string(bytes.TrimSpace(buf.Bytes()))
	}
	logger.Debugf(msg, args...)
}
