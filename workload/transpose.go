package workload

import "fmt"

// Default matrix layout of the transpose workloads.
const (
	DefaultMatrixSize  = 256
	DefaultElementSize = 4
	DefaultInAddress   = 1 << 20
	DefaultOutAddress  = 1 << 22
)

// Transpose copies an N×N row-major matrix at In into its transpose at Out,
// reading In row by row and therefore writing Out column by column.
type Transpose struct {
	N           uint64
	ElementSize uint64
	In          uint64
	Out         uint64
}

// NewTranspose returns a transpose of a 256×256 matrix of 4-byte elements.
func NewTranspose() Transpose {
	return Transpose{
		N:           DefaultMatrixSize,
		ElementSize: DefaultElementSize,
		In:          DefaultInAddress,
		Out:         DefaultOutAddress,
	}
}

// Name describes the workload.
func (t Transpose) Name() string {
	return fmt.Sprintf("transpose-%d", t.N)
}

// Len returns the number of accesses.
func (t Transpose) Len() uint64 {
	return 2 * t.N * t.N
}

func (t Transpose) validate() error {
	if t.N == 0 || t.ElementSize == 0 {
		return fmt.Errorf("matrix size and element size must be positive, "+
			"got %d and %d", t.N, t.ElementSize)
	}

	return nil
}

// copyElement loads in[row][col] and stores it to out[col][row].
func (t Transpose) copyElement(acc Accessor, row, col uint64) {
	rowBytes := t.N * t.ElementSize

	acc.Load(t.In + row*rowBytes + col*t.ElementSize)
	acc.Store(t.Out + row*t.ElementSize + col*rowBytes)
}

// Run issues the accesses.
func (t Transpose) Run(acc Accessor, progress Progress) error {
	if err := t.validate(); err != nil {
		return err
	}

	for row := uint64(0); row < t.N; row++ {
		for col := uint64(0); col < t.N; col++ {
			t.copyElement(acc, row, col)
		}

		report(progress, 2*t.N)
	}

	return nil
}

// TiledTranspose performs the same copy as Transpose but visits the matrix in
// Tile×Tile blocks so that both matrices are touched in small regions.
type TiledTranspose struct {
	Transpose

	Tile uint64
}

// NewTiledTranspose returns a tiled transpose of the default matrix.
func NewTiledTranspose(tile uint64) TiledTranspose {
	return TiledTranspose{
		Transpose: NewTranspose(),
		Tile:      tile,
	}
}

// Name describes the workload.
func (t TiledTranspose) Name() string {
	return fmt.Sprintf("transpose-%d-tile-%d", t.N, t.Tile)
}

// Run issues the accesses.
func (t TiledTranspose) Run(acc Accessor, progress Progress) error {
	if err := t.validate(); err != nil {
		return err
	}

	if t.Tile == 0 || t.N%t.Tile != 0 {
		return fmt.Errorf("tile size %d does not divide matrix size %d",
			t.Tile, t.N)
	}

	for row := uint64(0); row < t.N; row += t.Tile {
		for col := uint64(0); col < t.N; col += t.Tile {
			for i := uint64(0); i < t.Tile; i++ {
				for j := uint64(0); j < t.Tile; j++ {
					t.copyElement(acc, row+i, col+j)
				}
			}

			report(progress, 2*t.Tile*t.Tile)
		}
	}

	return nil
}
