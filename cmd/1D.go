/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/goswe/dam_break"
	"github.com/notargets/goswe/model_problems/SWE2D"
	"github.com/notargets/goswe/model_problems/SWE2D/scenarios"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "Dam break in a channel compared with the exact solution",
	Long: `
Runs the 2D solver on a one dimensional dam break (a channel two cells wide)
and reports the error against the exact wet bed solution,

goswe 1D [-x NX] [-t finalTime] [--hl 10] [--hr 5]`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m1d := &Model1D{
			NX:        viper.GetInt("1D.nx"),
			FinalTime: viper.GetFloat64("1D.finalTime"),
			HL:        viper.GetFloat64("1D.hl"),
			HR:        viper.GetFloat64("1D.hr"),
			CFL:       viper.GetFloat64("1D.CFL"),
			ProcLimit: viper.GetInt("1D.procLimit"),
		}
		m1d.CFL = LimitCFL(m1d.CFL)
		_, err := Run1D(m1d)
		return err
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().IntP("nx", "x", 200, "number of cells along the channel")
	OneDCmd.Flags().Float64P("finalTime", "t", 10, "end of the simulation")
	OneDCmd.Flags().Float64("hl", 10, "water height left of the dam")
	OneDCmd.Flags().Float64("hr", 5, "water height right of the dam")
	OneDCmd.Flags().Float64("CFL", 0.4, "CFL - increase for speedup, decrease for stability")
	OneDCmd.Flags().IntP("procLimit", "p", 0, "maximum number of go routines, 0 uses one per CPU")
	for _, name := range []string{"nx", "finalTime", "hl", "hr", "CFL", "procLimit"} {
		_ = viper.BindPFlag("1D."+name, OneDCmd.Flags().Lookup(name))
	}
}

type Model1D struct {
	NX        int
	FinalTime float64
	HL, HR    float64
	CFL       float64
	ProcLimit int
}

const max_CFL = 0.5

func LimitCFL(CFL float64) (CFLNew float64) {
	if CFL > max_CFL {
		fmt.Printf("Input CFL is higher than max CFL for this method\nReplacing with Max CFL: %8.2f\n", max_CFL)
		return max_CFL
	}
	return CFL
}

// Run1D returns the mean absolute height error against the exact solution
func Run1D(m1d *Model1D) (l1 float64, err error) {
	if m1d.NX < 2 || !(m1d.FinalTime > 0) || !(m1d.CFL > 0) {
		err = fmt.Errorf("need NX > 1, FinalTime > 0 and CFL > 0, have %d, %g, %g", m1d.NX, m1d.FinalTime, m1d.CFL)
		return
	}
	if !(m1d.HL > m1d.HR && m1d.HR > 0) {
		err = fmt.Errorf("need hl > hr > 0, have hl, hr = %g, %g", m1d.HL, m1d.HR)
		return
	}
	var (
		sc   = scenarios.NewDamBreak()
		dx   = float32(1000) / float32(m1d.NX)
		bl   = SWE2D.NewBlock(m1d.NX, 2, dx, 5)
		Time float64
	)
	sc.HL, sc.HR = float32(m1d.HL), float32(m1d.HR)
	bl.InitScenario(0, 0, sc)
	ds := SWE2D.NewDimensionalSplitting(bl, m1d.ProcLimit)
	ds.CFL = float32(m1d.CFL)
	steps := 0
	for Time < m1d.FinalTime {
		bl.SetGhostLayer()
		Time += float64(ds.Advance())
		steps++
	}
	X := make([]float64, m1d.NX)
	for x := 1; x <= m1d.NX; x++ {
		cx, _ := bl.CellCenter(x, 1)
		X[x-1] = float64(cx)
	}
	H, U := dam_break.Stoker_calc(m1d.HL, m1d.HR, float64(sc.X0), Time, X)
	var uErr float64
	for x := 1; x <= m1d.NX; x++ {
		h := float64(bl.H.At(x, 1))
		l1 += math.Abs(h - H[x-1])
		if h > 0 {
			uErr += math.Abs(float64(bl.Hu.At(x, 1))/h - U[x-1])
		}
	}
	l1 /= float64(m1d.NX)
	uErr /= float64(m1d.NX)
	fmt.Printf("Dam break hl = %g, hr = %g, NX = %d, t = %8.5f after %d steps\n", m1d.HL, m1d.HR, m1d.NX, Time, steps)
	fmt.Printf("L1 error: height %11.4e, velocity %11.4e\n", l1, uErr)
	return
}
