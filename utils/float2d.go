package utils

import (
	"fmt"
)

// Float2D is a dense single precision array stored column major: column x is
// contiguous, so Data[x*Rows+y] holds element [x][y].
type Float2D struct {
	Cols, Rows int
	DataP      []float32
}

func NewFloat2D(cols, rows int, dataO ...[]float32) (R Float2D) {
	if cols < 0 || rows < 0 {
		panic(fmt.Errorf("invalid Float2D dimensions: cols, rows = %d, %d", cols, rows))
	}
	R = Float2D{Cols: cols, Rows: rows}
	if len(dataO) != 0 {
		if len(dataO[0]) != cols*rows {
			err := fmt.Errorf("mismatch in allocation: NewFloat2D cols,rows = %v,%v, len(data[0]) = %v",
				cols, rows, len(dataO[0]))
			panic(err)
		}
		R.DataP = dataO[0]
		return
	}
	R.DataP = make([]float32, cols*rows)
	return
}

func (f Float2D) Dims() (cols, rows int) { return f.Cols, f.Rows }
func (f Float2D) Data() []float32       { return f.DataP }
func (f Float2D) At(x, y int) float32    { return f.DataP[x*f.Rows+y] }
func (f Float2D) Set(x, y int, val float32) {
	f.DataP[x*f.Rows+y] = val
}

// Col returns column x as a slice sharing storage with f
func (f Float2D) Col(x int) []float32 {
	return f.DataP[x*f.Rows : (x+1)*f.Rows]
}

func (f Float2D) Copy() (R Float2D) { // Does not change receiver
	R = NewFloat2D(f.Cols, f.Rows)
	copy(R.DataP, f.DataP)
	return
}

func (f Float2D) Fill(val float32) Float2D {
	for i := range f.DataP {
		f.DataP[i] = val
	}
	return f
}

func (f Float2D) Equal(g Float2D) bool {
	if f.Cols != g.Cols || f.Rows != g.Rows {
		return false
	}
	for i, val := range f.DataP {
		if g.DataP[i] != val {
			return false
		}
	}
	return true
}

// Interior returns the elements inside a border of width nb, column by column,
// widened to float64 for reductions
func (f Float2D) Interior(nb int) (r []float64) {
	var (
		nc, nr = f.Cols - 2*nb, f.Rows - 2*nb
	)
	if nc <= 0 || nr <= 0 {
		return
	}
	r = make([]float64, 0, nc*nr)
	for x := nb; x < f.Cols-nb; x++ {
		col := f.Col(x)
		for y := nb; y < f.Rows-nb; y++ {
			r = append(r, float64(col[y]))
		}
	}
	return
}
