/*
Copyright © 2020 ConsenSys

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

// Package encoding offers (de)serialization APIs for field and curve
// objects. It uses canonical CBOR and prefixes every stream with the
// curve ID, so an object cannot be deserialized under another curve.
package encoding

import (
	"errors"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/zkmath/zkmath/ecc"
)

var errInvalidCurve = errors.New("trying to deserialize an object serialized with another curve")

// encMode is the canonical CBOR encoder configuration, built once.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Write serializes object into file
func Write(path string, from interface{}, curveID ecc.ID) error {
	// create file
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Serialize(f, from, curveID)
}

// Read reads and deserializes input into object
// provided interface must be a pointer
func Read(path string, into interface{}, expectedCurveID ecc.ID) error {
	// open file
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Deserialize(f, into, expectedCurveID)
}

// Serialize object from into provided writer
// encodes the curveID in the first bytes
func Serialize(writer io.Writer, from interface{}, curveID ecc.ID) error {
	encoder := encMode.NewEncoder(writer)

	// encode the curve type in the first bytes
	if err := encoder.Encode(curveID); err != nil {
		return err
	}

	// encode our object
	if err := encoder.Encode(from); err != nil {
		return err
	}

	return nil
}

// PeekCurveID reads the first bytes of the file and tries to decode and return the curveID
func PeekCurveID(file string) (ecc.ID, error) {
	// open file
	reader, err := os.Open(file)
	if err != nil {
		return ecc.UNKNOWN, err
	}
	defer reader.Close()

	decoder := cbor.NewDecoder(reader)

	// decode the curve ID
	var curveID ecc.ID
	if err = decoder.Decode(&curveID); err != nil {
		return ecc.UNKNOWN, err
	}
	return curveID, nil
}

// Deserialize reads bytes from reader and constructs object into
func Deserialize(reader io.Reader, into interface{}, expectedCurveID ecc.ID) error {
	decoder := cbor.NewDecoder(reader)

	// decode the curve type, and ensure it matches
	var curveID ecc.ID
	if err := decoder.Decode(&curveID); err != nil {
		return err
	}
	if curveID != expectedCurveID {
		return errInvalidCurve
	}

	if err := decoder.Decode(into); err != nil {
		return err
	}

	return nil
}
