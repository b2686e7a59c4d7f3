package monitoring_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/liveflow/blocks"
	"github.com/sarchlab/liveflow/engine"
	"github.com/sarchlab/liveflow/monitoring"
)

var _ = Describe("Monitor", func() {
	var (
		e       *engine.Engine
		monitor *monitoring.Monitor
		baseURL string
	)

	BeforeEach(func() {
		e = engine.NewEngine().WithBlockTypes(blocks.Catalog()...)

		monitor = monitoring.NewMonitor()
		monitor.RegisterEngine(e)
		monitor.StartServer()

		baseURL = monitor.URL()
		Expect(baseURL).ToNot(BeEmpty())
	})

	AfterEach(func() {
		monitor.StopServer()
	})

	getJSON := func(path string, out any) {
		rsp, err := http.Get(baseURL + path)
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
		Expect(json.NewDecoder(rsp.Body).Decode(out)).To(Succeed())
	}

	It("should report the tick rate", func() {
		rate := struct {
			Rate   float64 `json:"rate"`
			Target float64 `json:"target"`
		}{}

		getJSON("/api/rate", &rate)

		Expect(rate.Target).To(BeNumerically("~", engine.DefaultTickRate, 0.01))
	})

	It("should change the target tick rate", func() {
		rsp, err := http.Post(baseURL+"/api/rate/120", "", nil)
		Expect(err).ToNot(HaveOccurred())
		rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
		Expect(e.TargetTickRate()).To(BeNumerically("~", 120.0, 0.01))
	})

	It("should reject an invalid tick rate", func() {
		rsp, err := http.Post(baseURL+"/api/rate/-1", "", nil)
		Expect(err).ToNot(HaveOccurred())
		rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("should report the tick count", func() {
		e.Tick()
		e.Tick()

		count := struct {
			Ticks uint64 `json:"ticks"`
		}{}

		getJSON("/api/ticks", &count)

		Expect(count.Ticks).To(Equal(uint64(2)))
	})

	It("should enumerate the available types", func() {
		var types []string

		getJSON("/api/types", &types)

		Expect(types).To(ContainElements("not", "hertz", "counter"))
	})

	It("should add, list and remove blocks", func() {
		rsp, err := http.Post(baseURL+"/api/block/counter", "", nil)
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()
		Expect(rsp.StatusCode).To(Equal(http.StatusOK))

		added := struct {
			ID string `json:"id"`
		}{}
		Expect(json.NewDecoder(rsp.Body).Decode(&added)).To(Succeed())
		Expect(added.ID).To(HavePrefix("counter:"))

		var listed []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		getJSON("/api/blocks", &listed)
		Expect(listed).To(HaveLen(1))
		Expect(listed[0].ID).To(Equal(added.ID))

		req, err := http.NewRequest(
			http.MethodDelete, baseURL+"/api/block/"+added.ID, nil)
		Expect(err).ToNot(HaveOccurred())
		delRsp, err := http.DefaultClient.Do(req)
		Expect(err).ToNot(HaveOccurred())
		delRsp.Body.Close()

		Expect(delRsp.StatusCode).To(Equal(http.StatusOK))
		Expect(e.Blocks()).To(BeEmpty())
	})

	It("should refuse to add an unknown type", func() {
		rsp, err := http.Post(baseURL+"/api/block/quantizer", "", nil)
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusBadRequest))

		body, err := io.ReadAll(rsp.Body)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("unknown block type"))
	})

	It("should wire blocks", func() {
		hertz, err := e.AddBlock("hertz")
		Expect(err).ToNot(HaveOccurred())
		not, err := e.AddBlock("not")
		Expect(err).ToNot(HaveOccurred())

		body := `{"dst":"` + not.ID() + `","input":"a",` +
			`"src":"` + hertz.ID() + `","output":"hertz"}`
		rsp, err := http.Post(
			baseURL+"/api/wire", "application/json", strings.NewReader(body))
		Expect(err).ToNot(HaveOccurred())
		rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
		Expect(not.InputByName("a").Source()).
			To(BeIdenticalTo(hertz.OutputByName("hertz")))
	})

	It("should reject a bad wiring request", func() {
		rsp, err := http.Post(
			baseURL+"/api/wire", "application/json",
			strings.NewReader(`{"dst":"nope:1","input":"a"}`))
		Expect(err).ToNot(HaveOccurred())
		rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusBadRequest))
	})
})
