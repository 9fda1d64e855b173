package torrent

import (
	"github.com/prometheus/client_golang/prometheus"
)

// A snapshot of download progress across a torrent's peer connections.
type Stats struct {
	DownloadedBytes int64
	TotalPeers      int
	// Peers currently choking us.
	ChokedBy       int
	QueuedRequests int
}

// Counts peers and the ones choking us. The byte and request totals belong to whoever drives the
// download, so they're passed through.
func StatsFromPeers(peers []*PeerState, downloadedBytes int64, queuedRequests int) (ret Stats) {
	ret.DownloadedBytes = downloadedBytes
	ret.QueuedRequests = queuedRequests
	ret.TotalPeers = len(peers)
	for _, ps := range peers {
		if ps.AmChoked {
			ret.ChokedBy++
		}
	}
	return
}

var (
	downloadedBytesDesc = prometheus.NewDesc(
		"torrent_downloaded_bytes", "Bytes of torrent data downloaded.", nil, nil)
	peersDesc = prometheus.NewDesc(
		"torrent_peers", "Connected peers.", nil, nil)
	chokedByDesc = prometheus.NewDesc(
		"torrent_peers_choking", "Connected peers choking us.", nil, nil)
	queuedRequestsDesc = prometheus.NewDesc(
		"torrent_queued_requests", "Block requests waiting to be sent.", nil, nil)
)

// Exposes Stats to Prometheus. Source is called on every scrape, from the scraping goroutine, so it
// must be safe to call concurrently with whatever owns the peer states.
type StatsCollector struct {
	Source func() Stats
}

var _ prometheus.Collector = StatsCollector{}

func (me StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- downloadedBytesDesc
	ch <- peersDesc
	ch <- chokedByDesc
	ch <- queuedRequestsDesc
}

func (me StatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := me.Source()
	ch <- prometheus.MustNewConstMetric(downloadedBytesDesc, prometheus.CounterValue, float64(s.DownloadedBytes))
	ch <- prometheus.MustNewConstMetric(peersDesc, prometheus.GaugeValue, float64(s.TotalPeers))
	ch <- prometheus.MustNewConstMetric(chokedByDesc, prometheus.GaugeValue, float64(s.ChokedBy))
	ch <- prometheus.MustNewConstMetric(queuedRequestsDesc, prometheus.GaugeValue, float64(s.QueuedRequests))
}
