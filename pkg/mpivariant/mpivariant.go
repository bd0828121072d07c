// Package mpivariant names the MPI implementations a recipe can be built
// against.
package mpivariant

import (
	"fmt"
	"sort"
	"strings"

	// we cannot use "maps" yet, as it needs go1.23
	"golang.org/x/exp/maps"
)

// Variant is one of the mutually exclusive MPI implementations.
type Variant string

const (
	MPICH   Variant = "mpich"
	OpenMPI Variant = "openmpi"
	NoMPI   Variant = "nompi"
)

// AxisKey is the variant document key that selects the MPI implementation.
const AxisKey = "mpi"

var supportedVariants = map[string]Variant{
	string(MPICH):   MPICH,
	string(OpenMPI): OpenMPI,
	string(NoMPI):   NoMPI,
}

// Names returns the sorted names of all known variants.
func Names() []string {
	keys := maps.Keys(supportedVariants)
	sort.Strings(keys)
	return keys
}

// All returns every known variant, sorted by name.
func All() []Variant {
	names := Names()
	all := make([]Variant, 0, len(names))
	for _, name := range names {
		all = append(all, supportedVariants[name])
	}
	return all
}

// Parse returns the variant with the given name.
func Parse(name string) (Variant, error) {
	v, ok := supportedVariants[name]
	if !ok {
		return "", fmt.Errorf("invalid mpi variant %q (choose from %s)", name, strings.Join(Names(), ", "))
	}
	return v, nil
}

// Others returns all variants except v.
func (v Variant) Others() []Variant {
	var others []Variant
	for _, o := range All() {
		if o != v {
			others = append(others, o)
		}
	}
	return others
}

func (v Variant) String() string {
	return string(v)
}
