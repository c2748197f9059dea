// Package poolprom exports blockpool metrics to Prometheus.
package poolprom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/blockpool"
)

// Source is anything that can report pool metrics: Pool, TypedPool, Slab,
// SafePool and SafeTypedPool all qualify. Collect calls Metrics on every
// scrape, so an unsynchronized pool must only be scraped from the goroutine
// that owns it; wrap shared pools in a SafePool.
type Source interface {
	Metrics() blockpool.PoolMetrics
}

// Collector is a prometheus.Collector reporting the state of one pool.
type Collector struct {
	src Source

	usedBytes     *prometheus.Desc
	allocations   *prometheus.Desc
	capacityBytes *prometheus.Desc
	reservedBytes *prometheus.Desc
	slots         *prometheus.Desc
	utilization   *prometheus.Desc
}

// NewCollector creates a collector for src. Every metric carries a constant
// "pool" label set to pool.
func NewCollector(namespace, pool string, src Source) *Collector {
	labels := prometheus.Labels{"pool": pool}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", name), help, nil, labels)
	}
	return &Collector{
		src:           src,
		usedBytes:     desc("used_bytes", "Bytes held by allocated slots."),
		allocations:   desc("allocations", "Number of allocated slots."),
		capacityBytes: desc("capacity_bytes", "Usable arena size in bytes."),
		reservedBytes: desc("reserved_bytes", "Bytes reserved for the arena, including alignment padding."),
		slots:         desc("slots", "Fixed number of slots in the arena."),
		utilization:   desc("utilization_ratio", "Ratio of allocated to total slots."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.usedBytes
	ch <- c.allocations
	ch <- c.capacityBytes
	ch <- c.reservedBytes
	ch <- c.slots
	ch <- c.utilization
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.src.Metrics()
	ch <- prometheus.MustNewConstMetric(c.usedBytes, prometheus.GaugeValue, float64(m.UsedMemory))
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.GaugeValue, float64(m.NumAllocations))
	ch <- prometheus.MustNewConstMetric(c.capacityBytes, prometheus.GaugeValue, float64(m.Size))
	ch <- prometheus.MustNewConstMetric(c.reservedBytes, prometheus.GaugeValue, float64(m.Reserved))
	ch <- prometheus.MustNewConstMetric(c.slots, prometheus.GaugeValue, float64(m.SlotCount))
	ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, m.Utilization)
}
