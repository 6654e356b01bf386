// This file is part of Eightbench.
//
// Eightbench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Eightbench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Eightbench.  If not, see <https://www.gnu.org/licenses/>.
package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value.
type Value any

// pref is implemented by all preference types.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// Bool implements a boolean type in the prefs system. A string value of
// anything other than "true" (case insensitive) sets the value to false.
type Bool struct {
	value[bool]
}

// Int implements an integer type in the prefs system. Values can be set from
// an int, an int64 or a string.
type Int struct {
	value[int]
}

// String implements a string type in the prefs system. Values of any type
// are formatted with the %v verb.
type String struct {
	value[string]
}

// value is the implementation shared by the preference types. The zero value
// is ready to use and has the zero value of T as its default.
type value[T bool | int | string] struct {
	v        atomic.Value // T
	def      T
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

func convert[T bool | int | string](v Value) (T, error) {
	var nv T
	switch p := any(&nv).(type) {
	case *bool:
		switch v := v.(type) {
		case bool:
			*p = v
		case string:
			*p = strings.ToLower(strings.TrimSpace(v)) == "true"
		default:
			return nv, fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
		}
	case *int:
		switch v := v.(type) {
		case int:
			*p = v
		case int64:
			*p = int(v)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nv, fmt.Errorf("prefs: cannot convert %T to prefs.Int: %w", v, err)
			}
			*p = n
		default:
			return nv, fmt.Errorf("prefs: cannot convert %T to prefs.Int", v)
		}
	case *string:
		*p = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return nv, nil
}

func (p *value[T]) get() T {
	ov := p.v.Load()
	if ov == nil {
		return p.def
	}
	return ov.(T)
}

func (p *value[T]) String() string {
	return fmt.Sprintf("%v", p.get())
}

// Set a new value. The pre hook can prevent the value from changing by
// returning an error.
func (p *value[T]) Set(v Value) error {
	nv, err := convert[T](v)
	if err != nil {
		return err
	}

	if p.hookPre != nil {
		if err := p.hookPre(nv); err != nil {
			return err
		}
	}

	p.v.Store(nv)

	if p.hookPost != nil {
		if err := p.hookPost(nv); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the raw pref value.
func (p *value[T]) Get() Value {
	return p.get()
}

// SetDefault sets the value used by Reset() and then sets the current value
// to it. Hooks are not called.
func (p *value[T]) SetDefault(v T) {
	p.def = v
	p.v.Store(v)
}

// Reset sets the value to the default.
func (p *value[T]) Reset() error {
	return p.Set(p.def)
}

// SetHookPre sets the callback function to be called just before the value is
// changed.
func (p *value[T]) SetHookPre(f func(value Value) error) {
	p.hookPre = f
}

// SetHookPost sets the callback function to be called just after the value is
// changed.
func (p *value[T]) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}
