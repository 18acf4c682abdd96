// Package metrics provides Prometheus metrics for the foliodesk daemon.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// IPC metrics
	ipcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foliodesk_ipc_requests_total",
			Help: "Total IPC requests handled by the daemon",
		},
		[]string{"command", "status"},
	)

	// Window metrics
	windowEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foliodesk_window_events_total",
			Help: "Total window registry events",
		},
		[]string{"event"},
	)

	windowsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foliodesk_windows_open",
			Help: "Number of open windows",
		},
	)

	// Trash metrics
	trashOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foliodesk_trash_operations_total",
			Help: "Total trash ledger operations",
		},
		[]string{"op"},
	)

	trashEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foliodesk_trash_entries",
			Help: "Number of items in the trash",
		},
	)

	// Terminal metrics
	terminalCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foliodesk_terminal_commands_total",
			Help: "Total terminal commands executed",
		},
		[]string{"known"},
	)

	// Gallery metrics
	galleryUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foliodesk_gallery_uploads_total",
			Help: "Total gallery upload attempts",
		},
		[]string{"status"},
	)

	galleryImages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foliodesk_gallery_images",
			Help: "Number of images in the gallery",
		},
	)

	galleryStoredBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foliodesk_gallery_stored_bytes",
			Help: "Serialized size of the persisted gallery collection",
		},
	)

	gallerySaveFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foliodesk_gallery_save_failures_total",
			Help: "Total failed gallery saves",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordIPCRequest records one handled IPC request.
func RecordIPCRequest(command string, ok bool) {
	ipcRequestsTotal.WithLabelValues(command, status(ok)).Inc()
}

// RecordWindowEvent records a window registry event and the open count after it.
func RecordWindowEvent(event string, open int) {
	windowEventsTotal.WithLabelValues(event).Inc()
	windowsOpen.Set(float64(open))
}

// RecordTrashOp records a ledger operation and the entry count after it.
func RecordTrashOp(op string, entries int) {
	trashOpsTotal.WithLabelValues(op).Inc()
	trashEntries.Set(float64(entries))
}

// RecordTerminalCommand records an executed terminal command.
func RecordTerminalCommand(known bool) {
	terminalCommandsTotal.WithLabelValues(strconv.FormatBool(known)).Inc()
}

// RecordGalleryUpload records an upload attempt.
func RecordGalleryUpload(success bool) {
	galleryUploadsTotal.WithLabelValues(status(success)).Inc()
}

// RecordGallerySaveFailure records a failed background save.
func RecordGallerySaveFailure() {
	gallerySaveFailuresTotal.Inc()
}

// SetGalleryUsage records the image count and persisted size.
func SetGalleryUsage(images int, bytes int64) {
	galleryImages.Set(float64(images))
	galleryStoredBytes.Set(float64(bytes))
}

func status(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
