package trace

import (
	"bytes"
	"database/sql"
	"log"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/mem/cache"
)

var _ = Describe("Tracer", func() {
	var (
		c *cache.Comp
	)

	BeforeEach(func() {
		c = cache.MakeBuilder().
			WithSetBits(0).
			WithWayAssociativity(1).
			WithBlockBits(0).
			Build("L1")
	})

	It("should log accesses", func() {
		buf := new(bytes.Buffer)
		c.AcceptHook(NewTracer(log.New(buf, "", 0)))

		c.Access(0xa, 0)
		c.Access(0xa, 0)
		c.Access(0xb, 0)

		Expect(buf.String()).To(Equal(
			"L1, 0, 0, 0xa, miss\n" +
				"L1, 0, 0, 0xa, hit\n" +
				"L1, 0, 0, 0xb, miss eviction, 0xa\n"))
	})

	It("should record accesses into a database", func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace")
		recorder, err := datarecording.New(path)
		Expect(err).NotTo(HaveOccurred())

		c.AcceptHook(NewDBTracer(recorder))

		c.Access(0xa, 0)
		c.Access(0xb, 0)
		Expect(recorder.Close()).To(Succeed())

		db, err := sql.Open("sqlite3", path+".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		var outcome, evicted string
		err = db.QueryRow(
			"SELECT Outcome, EvictedTag FROM cache_accesses WHERE Seq=1;",
		).Scan(&outcome, &evicted)
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal("miss eviction"))
		Expect(evicted).To(Equal("0xa"))
	})
})
