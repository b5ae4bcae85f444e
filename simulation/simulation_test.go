package simulation

import (
	"database/sql"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/workload"
)

func newTestCache(name string) *cache.Cache {
	return cache.MakeBuilder().
		WithNumSets(4).
		WithLineSize(8).
		WithWayAssociativity(2).
		WithLogger(nil).
		Build(name)
}

func smallTrace() *workload.Trace {
	return workload.NewTrace("small", []workload.Access{
		{Kind: cache.AccessLoad, Address: 0x00},
		{Kind: cache.AccessStore, Address: 0x04},
		{Kind: cache.AccessLoad, Address: 0x20},
		{Kind: cache.AccessLoad, Address: 0x40},
	})
}

var _ = Describe("Builder", func() {
	It("should reject a monitor port without a monitor", func() {
		Expect(func() {
			MakeBuilder().WithoutRecording().WithMonitorPort(32776).Build()
		}).To(Panic())
	})

	It("should reject a browser without a monitor", func() {
		Expect(func() {
			MakeBuilder().WithoutRecording().WithBrowser().Build()
		}).To(Panic())
	})

	It("should reject access tracing without recording", func() {
		Expect(func() {
			MakeBuilder().WithoutRecording().WithAccessTracing().Build()
		}).To(Panic())
	})

	It("should reject a zero publish interval", func() {
		Expect(func() {
			MakeBuilder().WithoutRecording().WithPublishInterval(0).Build()
		}).To(Panic())
	})

	It("should give every simulation a unique ID", func() {
		s1 := MakeBuilder().WithoutRecording().Build()
		s2 := MakeBuilder().WithoutRecording().Build()

		Expect(s1.ID()).NotTo(BeEmpty())
		Expect(s1.ID()).NotTo(Equal(s2.ID()))
		Expect(s1.GetDataRecorder()).To(BeNil())
		Expect(s1.GetMonitor()).To(BeNil())
	})
})

var _ = Describe("Simulation", func() {
	var s *Simulation

	BeforeEach(func() {
		s = MakeBuilder().WithoutRecording().Build()
	})

	AfterEach(func() {
		s.Terminate()
	})

	It("should find registered caches by name", func() {
		c := newTestCache("L1")
		s.RegisterCache(c)

		Expect(s.GetCacheByName("L1")).To(BeIdenticalTo(c))
	})

	It("should panic when a name is registered twice", func() {
		s.RegisterCache(newTestCache("L1"))

		Expect(func() { s.RegisterCache(newTestCache("L1")) }).To(Panic())
	})

	It("should panic when running an unregistered cache", func() {
		Expect(func() {
			_, _ = s.Run(newTestCache("L1"), smallTrace())
		}).To(Panic())
	})

	It("should return the counters after a run", func() {
		c := newTestCache("L1")
		s.RegisterCache(c)

		stats, err := s.Run(c, smallTrace())

		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Hit).To(Equal(uint64(1)))
		Expect(stats.Miss).To(Equal(uint64(3)))
		Expect(stats.DirtyEvict).To(Equal(uint64(1)))
		Expect(stats).To(Equal(c.Stats()))
	})

	It("should report workload errors", func() {
		c := newTestCache("L1")
		s.RegisterCache(c)

		w := workload.NewTiledTranspose(3)
		_, err := s.Run(c, w)

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Simulation with recording", func() {
	var (
		s      *Simulation
		output string
	)

	BeforeEach(func() {
		output = filepath.Join(GinkgoT().TempDir(), "run")
		s = MakeBuilder().
			WithOutputFileName(output).
			WithAccessTracing().
			Build()
	})

	It("should record the counters and the accesses", func() {
		c := newTestCache("L1")
		s.RegisterCache(c)

		_, err := s.Run(c, smallTrace())
		Expect(err).NotTo(HaveOccurred())

		s.Terminate()

		db, err := sql.Open("sqlite3", output+".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		var (
			name     string
			hit      uint64
			miss     uint64
			policy   string
			accesses int
		)

		err = db.QueryRow(
			"SELECT Cache, Hit, Miss, Policy FROM cache_stats").
			Scan(&name, &hit, &miss, &policy)
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("L1"))
		Expect(hit).To(Equal(uint64(1)))
		Expect(miss).To(Equal(uint64(3)))
		Expect(policy).To(Equal("LRU"))

		err = db.QueryRow("SELECT COUNT(*) FROM cache_accesses").
			Scan(&accesses)
		Expect(err).NotTo(HaveOccurred())
		Expect(accesses).To(Equal(4))
	})

	It("should label traced accesses with unique IDs", func() {
		c := newTestCache("L1")
		s.RegisterCache(c)

		_, err := s.Run(c, smallTrace())
		Expect(err).NotTo(HaveOccurred())

		s.Terminate()

		db, err := sql.Open("sqlite3", output+".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		var distinct, minLength int
		Expect(db.QueryRow("SELECT COUNT(DISTINCT ID), MIN(LENGTH(ID)) "+
			"FROM cache_accesses").Scan(&distinct, &minLength)).To(Succeed())
		Expect(distinct).To(Equal(4))
		Expect(minLength).To(Equal(20))
	})
})

var _ = Describe("Simulation with monitor", func() {
	It("should publish counters while running", func() {
		s := MakeBuilder().
			WithoutRecording().
			WithMonitor().
			WithPublishInterval(2).
			Build()
		defer s.Terminate()

		c := newTestCache("L1")
		s.RegisterCache(c)

		stats, err := s.Run(c, smallTrace())

		Expect(err).NotTo(HaveOccurred())
		Expect(s.GetMonitor()).NotTo(BeNil())
		Expect(s.GetMonitor().URL()).NotTo(BeEmpty())
		Expect(stats.Accesses()).To(Equal(uint64(4)))
	})
})
