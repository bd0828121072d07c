package mpivariant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpi-recipes/build-variant/pkg/mpivariant"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"mpich", "nompi", "openmpi"}, mpivariant.Names())
}

func TestParseHappy(t *testing.T) {
	for _, tc := range []struct {
		name     string
		expected mpivariant.Variant
	}{
		{"mpich", mpivariant.MPICH},
		{"openmpi", mpivariant.OpenMPI},
		{"nompi", mpivariant.NoMPI},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, err := mpivariant.Parse(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
			assert.Equal(t, tc.name, v.String())
		})
	}
}

func TestParseSad(t *testing.T) {
	for _, name := range []string{"", "lammpi", "MPICH", "mpichl", " openmpi"} {
		t.Run(name, func(t *testing.T) {
			_, err := mpivariant.Parse(name)
			assert.EqualError(t, err, `invalid mpi variant "`+name+`" (choose from mpich, nompi, openmpi)`)
		})
	}
}

func TestOthers(t *testing.T) {
	assert.Equal(t, []mpivariant.Variant{mpivariant.NoMPI, mpivariant.OpenMPI}, mpivariant.MPICH.Others())
	assert.Equal(t, []mpivariant.Variant{mpivariant.MPICH, mpivariant.NoMPI}, mpivariant.OpenMPI.Others())
	assert.Equal(t, []mpivariant.Variant{mpivariant.MPICH, mpivariant.OpenMPI}, mpivariant.NoMPI.Others())
}
