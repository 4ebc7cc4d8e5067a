// Package hdf5 records the trajectory of a rope simulation into an HDF5 file.
package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/PrincetonUniversity/verletrope"
	"gonum.org/v1/hdf5"
)

// A Dataset stipulates how to generate data and where to store them in the HDF5 file.
type Dataset struct {
	// Name the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single step.
	Dims []int

	// Data is a function that produces the data for the current step
	// as a pointer to a row-major slice or to a single value.
	Data func(s *verletrope.Simulation) interface{}

	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// Config holds the parameters of the HDF5 driver.
type Config struct {
	Output   string     // path of output file
	Steps    int        // total number of steps
	Step     func()     // go to next step
	Datasets []*Dataset // list of datasets

	// Meta is a pointer to a struct whose scalar fields
	// are saved as attributes of the "config" dataset.
	Meta interface{}
}

// Datasets returns the standard datasets for a chain of n nodes:
// node positions, active anchor and mean stretch at every step.
func Datasets(n int) []*Dataset {
	return []*Dataset{
		{
			Name: "nodes",
			Val:  verletrope.Vec2{},
			Dims: []int{n},
			Data: func(s *verletrope.Simulation) interface{} {
				p := s.Chain.Positions()
				return &p
			},
		},
		{
			Name: "anchor",
			Val:  verletrope.Vec2{},
			Data: func(s *verletrope.Simulation) interface{} {
				a := s.Anchor.Active()
				return &a
			},
		},
		{
			Name: "stretch",
			Val:  0.0,
			Data: func(s *verletrope.Simulation) interface{} {
				x := s.Chain.Stretch()
				return &x
			},
		},
	}
}

// Run runs a simulation and saves data to an HDF5 file.
func Run(s *verletrope.Simulation, conf *Config) (err error) {
	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}
	defer checkClose(&err, file)

	if err := saveConfig(file, conf); err != nil {
		return err
	}

	// obstacles do not move so they are only saved once
	if len(s.Obstacles) > 0 {
		if err := saveStatic(file, "obstacles", s.Obstacles.Centers()); err != nil {
			return err
		}
	}

	for _, d := range conf.Datasets {
		if err := d.init(file, conf); err != nil {
			return err
		}
		defer checkClose(&err, d)
	}

	for k := uint(0); k < uint(conf.Steps); k++ {
		// show progress as percentage
		fmt.Printf("\r% 3d%%", 100*k/uint(conf.Steps))

		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.fspace.SetOffset(start); err != nil {
				return err
			}
			if err := d.dset.WriteSubset(d.Data(s), d.mspace, d.fspace); err != nil {
				return err
			}
		}

		conf.Step()
	}
	fmt.Printf("\r100%%\n")
	return nil
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// reflect the scalar fields of conf.Meta plus the creation time.
func saveConfig(file *hdf5.File, conf *Config) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, scalar)

	now := time.Now().String()
	if err := writeAttr(dset, scalar, "Time", &now); err != nil {
		return err
	}

	if conf.Meta == nil {
		return nil
	}
	v := reflect.Indirect(reflect.ValueOf(conf.Meta))
	if v.Kind() != reflect.Struct || !v.CanAddr() {
		return fmt.Errorf("hdf5: Meta must be a pointer to a struct, got %T", conf.Meta)
	}
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		switch f.Kind() {
		case reflect.Int, reflect.Int64, reflect.Float64, reflect.String:
		default:
			// slices and nested structs have no scalar attribute form
			continue
		}
		if err := writeAttr(dset, scalar, v.Type().Field(i).Name, f.Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}

// writeAttr writes a scalar attribute. ptr must point to the value.
func writeAttr(dset *hdf5.Dataset, scalar *hdf5.Dataspace, name string, ptr interface{}) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(reflect.ValueOf(ptr).Elem().Interface())
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	attr, err := dset.CreateAttribute(name, dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	return attr.Write(ptr, dtype)
}

// saveStatic writes a one-dimensional dataset of points in a single shot.
func saveStatic(file *hdf5.File, name string, p []verletrope.Vec2) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(verletrope.Vec2{})
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	space, err := hdf5.CreateSimpleDataspace([]uint{uint(len(p))}, nil)
	if err != nil {
		return err
	}
	defer checkClose(&err, space)

	dset, err := file.CreateDataset(name, dtype, space)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	return dset.Write(&p)
}

// init creates the HDF5 objects backing a dataset.
func (d *Dataset) init(file *hdf5.File, conf *Config) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = uint(conf.Steps)
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	d.dset, err = file.CreateDataset(d.Name, dtype, d.fspace)
	if err != nil {
		checkClose(&err, d.fspace)
		checkClose(&err, d.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and Dataspaces.
func (d *Dataset) Close() error {
	if err := d.dset.Close(); err != nil {
		return err
	}
	if err := d.mspace.Close(); err != nil {
		return err
	}
	if err := d.fspace.Close(); err != nil {
		return err
	}
	return nil
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
