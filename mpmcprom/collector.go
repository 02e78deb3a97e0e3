// Package mpmcprom exports [mpmc.Stats] snapshots as Prometheus metrics.
//
//	ch := mpmc.New[Job](128)
//	prometheus.MustRegister(mpmcprom.NewCollector("jobs", ch))
//
// Metrics are read from a single snapshot per scrape, so the values of one
// scrape are mutually consistent.
package mpmcprom

import (
	"sync"

	"github.com/baxromumarov/mpmc"
	"github.com/prometheus/client_golang/prometheus"
)

// Source is anything that can produce an [mpmc.Stats] snapshot.
// *mpmc.Channel[T] satisfies it for every T.
type Source interface {
	Stats() mpmc.Stats
}

// Collector implements prometheus.Collector for one or more channels.
type Collector struct {
	mu      sync.RWMutex
	sources map[string]Source

	length           *prometheus.Desc
	capacity         *prometheus.Desc
	closed           *prometheus.Desc
	poisoned         *prometheus.Desc
	sent             *prometheus.Desc
	received         *prometheus.Desc
	rejected         *prometheus.Desc
	blockedSenders   *prometheus.Desc
	blockedReceivers *prometheus.Desc
}

// NewCollector returns a collector reporting src under the given channel
// label. More channels can be added with [Collector.Add].
func NewCollector(name string, src Source) *Collector {
	labels := []string{"channel"}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("mpmc", "channel", metric), help, labels, nil)
	}

	c := &Collector{
		sources: make(map[string]Source),

		length:           desc("length", "Number of values currently buffered."),
		capacity:         desc("capacity", "Maximum number of buffered values."),
		closed:           desc("closed", "1 if the channel has been shut down."),
		poisoned:         desc("poisoned", "1 if an internal failure poisoned the channel."),
		sent:             desc("sent_total", "Values accepted by the channel."),
		received:         desc("received_total", "Values handed out by the channel."),
		rejected:         desc("rejected_total", "Sends refused because the channel was closed."),
		blockedSenders:   desc("blocked_senders", "Goroutines waiting for space."),
		blockedReceivers: desc("blocked_receivers", "Goroutines waiting for data."),
	}
	c.Add(name, src)
	return c
}

// Add registers another channel under name. It is safe to call while
// the collector is being scraped. Panics if name is already in use or src
// is nil.
func (c *Collector) Add(name string, src Source) {
	if src == nil {
		panic("mpmcprom: Add requires non-nil source")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.sources[name]; dup {
		panic("mpmcprom: duplicate channel name " + name)
	}
	c.sources[name] = src
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.length
	ch <- c.capacity
	ch <- c.closed
	ch <- c.poisoned
	ch <- c.sent
	ch <- c.received
	ch <- c.rejected
	ch <- c.blockedSenders
	ch <- c.blockedReceivers
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for name, src := range c.sources {
		st := src.Stats()
		gauge := func(d *prometheus.Desc, v float64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, name)
		}
		counter := func(d *prometheus.Desc, v int64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), name)
		}

		gauge(c.length, float64(st.Len))
		gauge(c.capacity, float64(st.Cap))
		gauge(c.closed, boolFloat(st.Closed))
		gauge(c.poisoned, boolFloat(st.Poisoned))
		counter(c.sent, st.Sent)
		counter(c.received, st.Received)
		counter(c.rejected, st.Rejected)
		gauge(c.blockedSenders, float64(st.BlockedSenders))
		gauge(c.blockedReceivers, float64(st.BlockedReceivers))
	}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
