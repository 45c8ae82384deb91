package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/goswe/cmd"
)

var (
	csvFile   string
	outFile   string
	nxList    = "50,100,200,400"
	finalTime = 10.
	CFL       = 0.4
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study, skips the runs")
	outFilePtr := flag.String("out", outFile, "file to write the study to in CSV format")
	nxPtr := flag.String("nx", nxList, "comma separated cell counts along the channel")
	ftPtr := flag.Float64("FinalTime", finalTime, "FinalTime - the target end time for the sim")
	cflPtr := flag.Float64("CFL", CFL, "CFL - increase for speedup, decrease for stability")
	flag.Parse()
	csvFile, outFile, nxList = *csvFilePtr, *outFilePtr, *nxPtr
	finalTime, CFL = *ftPtr, *cflPtr

	var (
		cs  *ConvergenceStudy
		err error
	)
	if len(csvFile) != 0 {
		fmt.Printf("Input file: %v\n", csvFile)
		if cs, err = readCSV(csvFile); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	} else {
		if cs, err = runStudy(nxList, finalTime, CFL); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	fmt.Printf("Title = %s, CFL = %5.2f\n", cs.title, cs.CFL)
	fmt.Printf("%8s%12s%8s\n", "NX", "L1(h)", "order")
	orders := cs.Orders()
	for i := range cs.numPTS {
		fmt.Printf("%8d%12.4e%8.3f\n", cs.numPTS[i], cs.hL1[i], orders[i])
	}
	if len(outFile) != 0 {
		if err = cs.writeCSV(outFile); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
}

type ConvergenceStudy struct {
	title  string
	numPTS []int
	CFL    float64
	hL1    []float64
}

func NewConvergenceStudy(title string, CFL float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
		CFL:   CFL,
	}
}

func (cs *ConvergenceStudy) Add(numPTS int, hL1 float64) {
	cs.numPTS = append(cs.numPTS, numPTS)
	cs.hL1 = append(cs.hL1, hL1)
}

// Orders returns the observed order of accuracy between each entry and the one
// before it, the first entry has none and is NaN
func (cs *ConvergenceStudy) Orders() (orders []float64) {
	orders = make([]float64, len(cs.numPTS))
	for i := range orders {
		if i == 0 {
			orders[i] = math.NaN()
			continue
		}
		ratio := float64(cs.numPTS[i]) / float64(cs.numPTS[i-1])
		orders[i] = math.Log(cs.hL1[i-1]/cs.hL1[i]) / math.Log(ratio)
	}
	return
}

func runStudy(list string, FinalTime, CFL float64) (cs *ConvergenceStudy, err error) {
	cs = NewConvergenceStudy("Dam Break", CFL)
	for _, txt := range strings.Split(list, ",") {
		var (
			nx int
			l1 float64
		)
		if nx, err = strconv.Atoi(strings.TrimSpace(txt)); err != nil {
			return nil, fmt.Errorf("bad cell count %q: %w", txt, err)
		}
		m1d := &cmd.Model1D{NX: nx, FinalTime: FinalTime, HL: 10, HR: 5, CFL: CFL}
		if l1, err = cmd.Run1D(m1d); err != nil {
			return nil, err
		}
		cs.Add(nx, l1)
	}
	return
}

func (cs *ConvergenceStudy) writeCSV(fileName string) (err error) {
	var f *os.File
	if f, err = os.Create(fileName); err != nil {
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	_ = w.Write([]string{"title", "NX", "CFL", "L1"})
	for i := range cs.numPTS {
		_ = w.Write([]string{cs.title, strconv.Itoa(cs.numPTS[i]),
			strconv.FormatFloat(cs.CFL, 'g', -1, 64), strconv.FormatFloat(cs.hL1[i], 'g', -1, 64)})
	}
	w.Flush()
	return w.Error()
}

func readCSV(csvFile string) (cs *ConvergenceStudy, err error) {
	var (
		records [][]string
		f       *os.File
		cfl, l1 float64
		npts    int
	)
	if f, err = os.Open(csvFile); err != nil {
		return
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("line %d: need title, NX, CFL, L1", i+1)
		}
		title, nptstxt, cfltxt, l1txt := rec[0], rec[1], rec[2], rec[3]
		if npts, err = strconv.Atoi(nptstxt); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		_, _ = fmt.Sscanf(cfltxt, "%f", &cfl)
		_, _ = fmt.Sscanf(l1txt, "%f", &l1)
		if cs == nil {
			cs = NewConvergenceStudy(title, cfl)
		}
		cs.Add(npts, l1)
	}
	if cs == nil {
		err = fmt.Errorf("no entries in %s", csvFile)
	}
	return
}
