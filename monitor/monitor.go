package monitor

import (
	"bytes"
	"context"
	"crypto/subtle"
	"html/template"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// TailBytes is how much of the log file the monitor shows.
const TailBytes = 64 * 1024

// StatusFunc reports a one-line status of the running service.
type StatusFunc func(ctx context.Context) (string, bool)

// Monitor serves a small operations page with the tail of the dashboard log.
type Monitor struct {
	token   string
	logPath string
	status  StatusFunc
	started time.Time
}

func New(token, logPath string, status StatusFunc) *Monitor {
	return &Monitor{token: token, logPath: logPath, status: status, started: time.Now()}
}

// Register mounts /monitor and /monitor/logs. Both require ?token=.
func (m *Monitor) Register(router *gin.Engine) {
	group := router.Group("/monitor", m.requireToken)
	group.GET("", m.page)
	group.GET("/logs", m.logs)
}

func (m *Monitor) requireToken(c *gin.Context) {
	given := c.Query("token")
	if m.token == "" || subtle.ConstantTimeCompare([]byte(given), []byte(m.token)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "UNAUTHORIZED"})
		return
	}
	c.Next()
}

// Tail returns at most limit bytes from the end of the file at path, starting
// at a line boundary.
func Tail(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	offset := info.Size() - limit
	if offset < 0 {
		offset = 0
	}
	data, err := io.ReadAll(io.NewSectionReader(f, offset, info.Size()-offset))
	if err != nil {
		return nil, err
	}
	if offset > 0 {
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			data = data[i+1:]
		}
	}
	return data, nil
}

func (m *Monitor) logs(c *gin.Context) {
	data, err := Tail(m.logPath, TailBytes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "LOG_UNAVAILABLE", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

type monitorPage struct {
	Status  string
	Healthy bool
	Uptime  string
	LogPath string
	Log     string
}

var monitorTemplate = template.Must(template.New("monitor").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="5">
<title>Scopus dashboard monitor</title>
<style>
body { background: #0f0f0f; color: #e0e0e0; font-family: -apple-system, "Segoe UI", Roboto, sans-serif; padding: 20px; }
.card { border: 1px solid #333; border-radius: 12px; padding: 16px; margin-bottom: 16px; }
.ok { color: #4ade80; }
.down { color: #f87171; }
pre { max-height: 600px; overflow: auto; font-size: 12px; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Server Monitor</h1>
<div class="card">
<div class="{{if .Healthy}}ok{{else}}down{{end}}">Status: {{.Status}}</div>
<div>Uptime: {{.Uptime}}</div>
</div>
<div class="card">
<div>{{.LogPath}}</div>
<pre>{{.Log}}</pre>
</div>
</body>
</html>
`))

func (m *Monitor) page(c *gin.Context) {
	page := monitorPage{
		Status:  "online",
		Healthy: true,
		Uptime:  time.Since(m.started).Round(time.Second).String(),
		LogPath: m.logPath,
	}
	if m.status != nil {
		page.Status, page.Healthy = m.status(c.Request.Context())
	}
	if data, err := Tail(m.logPath, TailBytes); err != nil {
		page.Log = "Unable to read log: " + err.Error()
	} else {
		page.Log = strings.TrimRight(string(data), "\n")
	}

	var buf bytes.Buffer
	if err := monitorTemplate.Execute(&buf, page); err != nil {
		c.String(http.StatusInternalServerError, "failed to render monitor")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
