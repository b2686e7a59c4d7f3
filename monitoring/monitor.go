// Package monitoring turns a running engine into an HTTP server that exposes
// the engine's runtime controls: tick rate and count queries, target rate
// changes, block and type enumeration, block creation, removal and wiring.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync/atomic"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/liveflow/engine"
)

// Monitor can turn an engine into a server and allows external monitoring
// and controlling of the dataflow graph.
type Monitor struct {
	engine     *engine.Engine
	portNumber int
	listener   net.Listener
	stopped    atomic.Bool
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine to be monitored.
func (m *Monitor) RegisterEngine(e *engine.Engine) {
	m.engine = e
}

// StartServer starts the monitor as a web server on the configured port, or
// a random port when none is configured.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/rate", m.rate).Methods(http.MethodGet)
	r.HandleFunc("/api/rate/{tps}", m.setRate).Methods(http.MethodPost)
	r.HandleFunc("/api/ticks", m.ticks).Methods(http.MethodGet)
	r.HandleFunc("/api/blocks", m.listBlocks).Methods(http.MethodGet)
	r.HandleFunc("/api/types", m.listTypes).Methods(http.MethodGet)
	r.HandleFunc("/api/factories", m.listFactories).Methods(http.MethodGet)
	r.HandleFunc("/api/block/{id}", m.blockDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/block/{type}", m.addBlock).Methods(http.MethodPost)
	r.HandleFunc("/api/block/{id}", m.removeBlock).Methods(http.MethodDelete)
	r.HandleFunc("/api/wire", m.wire).Methods(http.MethodPost)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.listener = listener

	fmt.Fprintf(
		os.Stderr,
		"Monitoring engine with http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err := http.Serve(listener, r)
		if err != nil && !m.stopped.Load() {
			log.Print(err)
		}
	}()
}

// StopServer stops serving requests.
func (m *Monitor) StopServer() {
	if m.listener == nil {
		return
	}

	m.stopped.Store(true)
	_ = m.listener.Close()
}

// Addr returns the address the monitor is serving on.
func (m *Monitor) Addr() string {
	if m.listener == nil {
		return ""
	}

	return m.listener.Addr().String()
}

// URL returns the base URL of the monitor.
func (m *Monitor) URL() string {
	if m.listener == nil {
		return ""
	}

	port := m.listener.Addr().(*net.TCPAddr).Port

	return "http://localhost:" + strconv.Itoa(port)
}

func (m *Monitor) rate(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"rate\":%.6f,\"target\":%.6f}",
		m.engine.TickRate(), m.engine.TargetTickRate())
}

func (m *Monitor) setRate(w http.ResponseWriter, r *http.Request) {
	tps, err := strconv.ParseFloat(mux.Vars(r)["tps"], 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	if err := m.engine.SetTickRate(tps); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) ticks(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"ticks\":%d}", m.engine.TickCount())
}

type blockRsp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (m *Monitor) listBlocks(w http.ResponseWriter, _ *http.Request) {
	blocks := m.engine.Blocks()

	rsp := make([]blockRsp, 0, len(blocks))
	for _, b := range blocks {
		rsp = append(rsp, blockRsp{ID: b.ID(), Name: b.Name()})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listTypes(w http.ResponseWriter, _ *http.Request) {
	bytes, err := json.Marshal(m.engine.AvailableTypes())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listFactories(w http.ResponseWriter, _ *http.Request) {
	bytes, err := json.Marshal(m.engine.AvailableFactories())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) blockDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	b := m.findBlockOr404(w, id)
	if b == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(b)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) addBlock(w http.ResponseWriter, r *http.Request) {
	tag := mux.Vars(r)["type"]

	b, err := m.engine.AddBlock(tag)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	fmt.Fprintf(w, "{\"id\":%q}", b.ID())
}

func (m *Monitor) removeBlock(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := m.engine.RemoveBlock(id); err != nil {
		httpError(w, http.StatusNotFound, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type wireReq struct {
	Dst    string `json:"dst"`
	Input  string `json:"input"`
	Src    string `json:"src"`
	Output string `json:"output"`
}

func (m *Monitor) wire(w http.ResponseWriter, r *http.Request) {
	req := wireReq{}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	err = m.engine.Wire(req.Dst, req.Input, req.Src, req.Output)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) findBlockOr404(
	w http.ResponseWriter,
	id string,
) engine.Block {
	b, found := m.engine.BlockByID(id)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Block not found"))
		dieOnErr(err)

		return nil
	}

	return b
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func httpError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)
	fmt.Fprintf(w, "Error: %s", err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
