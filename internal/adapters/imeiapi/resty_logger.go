package imeiapi

import (
	"fmt"
	"regexp"

	"github.com/go-resty/resty/v2"

	applogger "github.com/lthoerner/imei-info/internal/logger"
)

// queryPattern matches the query string of a URL quoted in a resty message.
var queryPattern = regexp.MustCompile(`\?[^\s"]*`)

// restyLogger routes resty's own messages into the application logger with
// request query strings removed. Failures are already logged by the adapter,
// so everything is demoted to debug.
type restyLogger struct {
	logger applogger.AppLogger
}

var _ resty.Logger = (*restyLogger)(nil)

func (l *restyLogger) Errorf(format string, v ...interface{}) { l.log("error", format, v...) }
func (l *restyLogger) Warnf(format string, v ...interface{})  { l.log("warn", format, v...) }
func (l *restyLogger) Debugf(format string, v ...interface{}) { l.log("debug", format, v...) }

func (l *restyLogger) log(level, format string, v ...interface{}) {
	l.logger.Debug("resty: "+redactQueries(fmt.Sprintf(format, v...)), "resty_level", level)
}

func redactQueries(s string) string {
	return queryPattern.ReplaceAllString(s, "")
}
