package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ganttline/pkg/buildinfo"
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/taskio"
)

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (a *api) layout(w http.ResponseWriter, r *http.Request) {
	opts, err := a.options(r)
	if err != nil {
		writeError(w, r, a.cfg.Logger, err)
		return
	}
	tasks, err := a.readTasks(w, r, opts)
	if err != nil {
		writeError(w, r, a.cfg.Logger, err)
		return
	}

	data, hit, err := a.cfg.Runner.LayoutJSONWithCacheInfo(r.Context(), tasks, opts)
	if err != nil {
		writeError(w, r, a.cfg.Logger, err)
		return
	}
	writeCacheHeader(w, hit)
	writeBytes(w, pipeline.ContentType(pipeline.FormatJSON), data)
}

func (a *api) render(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, a.cfg.Logger, err)
		return
	}
	opts, err := a.options(r)
	if err != nil {
		writeError(w, r, a.cfg.Logger, err)
		return
	}
	opts.Formats = []string{format}

	tasks, err := a.readTasks(w, r, opts)
	if err != nil {
		writeError(w, r, a.cfg.Logger, err)
		return
	}

	result, err := a.cfg.Runner.Execute(r.Context(), tasks, opts)
	if err != nil {
		writeError(w, r, a.cfg.Logger, err)
		return
	}
	writeCacheHeader(w, result.CacheInfo.RenderHit)
	writeBytes(w, pipeline.ContentType(format), result.Artifacts[format])
}

// =============================================================================
// Request Parsing
// =============================================================================

// options builds pipeline options from the query string.
func (a *api) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Scale:       q.Get("scale"),
		Assignee:    q.Get("assignee"),
		Color:       q.Get("color"),
		Title:       q.Get("title"),
		Background:  q.Get("background"),
		InputFormat: inputFormat(r),
		Location:    a.cfg.Location,
		Logger:      a.cfg.Logger,
	}

	var err error
	if opts.Range, err = queryRange(q.Get("scale"), q.Get("start"), q.Get("end")); err != nil {
		return opts, err
	}
	if s := q.Get("from"); s != "" {
		if opts.From, err = taskio.ParseTime(s, a.cfg.Location); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "from")
		}
	}
	if s := q.Get("to"); s != "" {
		if opts.To, err = taskio.ParseTime(s, a.cfg.Location); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "to")
		}
	}
	if s := q.Get("min_duration"); s != "" {
		if opts.MinDuration, err = parseDuration(s); err != nil {
			return opts, err
		}
	}
	for name, dst := range map[string]*bool{
		"track_labels": &opts.TrackLabels,
		"detailed":     &opts.Detailed,
		"strict":       &opts.Strict,
		"refresh":      &opts.Refresh,
	} {
		if s := q.Get(name); s != "" {
			if *dst, err = strconv.ParseBool(s); err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, s)
			}
		}
	}
	return opts, opts.Validate()
}

// queryRange parses start and end. A missing bound takes the scale's
// default; no bounds at all means the default window.
func queryRange(scaleName, start, end string) (scale.Range, error) {
	if start == "" && end == "" {
		return scale.Range{}, nil
	}
	r := scale.DefaultHourRange
	if g, err := scale.Parse(scaleName); err == nil && g == scale.Month {
		r = scale.DefaultMonthRange
	}
	var err error
	if start != "" {
		if r.Start, err = strconv.Atoi(start); err != nil {
			return r, errors.New(errors.ErrCodeInvalidRange, "start: %q is not an integer", start)
		}
	}
	if end != "" {
		if r.End, err = strconv.Atoi(end); err != nil {
			return r, errors.New(errors.ErrCodeInvalidRange, "end: %q is not an integer", end)
		}
	}
	return r, nil
}

func parseDuration(s string) (d time.Duration, err error) {
	if d, err = time.ParseDuration(s); err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "min_duration: %q is not a duration", s)
	}
	return d, nil
}

// inputFormat picks the task encoding from ?input= or the Content-Type.
func inputFormat(r *http.Request) string {
	if f := r.URL.Query().Get("input"); f != "" {
		return f
	}
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "yaml"):
		return string(taskio.YAML)
	case strings.Contains(ct, "csv"):
		return string(taskio.CSV)
	}
	return string(taskio.JSON)
}

// readTasks decodes the request body, capped at MaxBodyBytes.
func (a *api) readTasks(w http.ResponseWriter, r *http.Request, opts pipeline.Options) ([]*task.Task, error) {
	body := http.MaxBytesReader(w, r.Body, a.cfg.MaxBodyBytes)
	defer body.Close()
	return pipeline.Load(body, opts)
}

// =============================================================================
// Responses
// =============================================================================

func writeCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
