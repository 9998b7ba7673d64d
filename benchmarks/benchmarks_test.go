/*
 * MinIO Cloud Storage, (C) 2022 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package tokenizer_benchmarks compares jsontape against encoding/json,
// json-iterator/go and bytedance/sonic using generated synthetic
// documents, since no fixture corpus ships with this module.
package tokenizer_benchmarks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/bytedance/sonic"
	jsoniter "github.com/json-iterator/go"

	tokenizer "github.com/strict-json/tokenizer"
)

func genDocument(n int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id":%d,"name":"item-%d","active":%v,"tags":["a","b","c"],"meta":{"x":1.5,"y":null}}`,
			i, i, i%2 == 0)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

var sizes = []int{10, 100, 1000}

func benchmarkEncodingJSON(b *testing.B, msg []byte) {
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	var parsed interface{}
	for i := 0; i < b.N; i++ {
		if err := json.Unmarshal(msg, &parsed); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkJsoniter(b *testing.B, msg []byte) {
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	var cfg = jsoniter.ConfigCompatibleWithStandardLibrary
	var parsed interface{}
	for i := 0; i < b.N; i++ {
		if err := cfg.Unmarshal(msg, &parsed); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkSonic(b *testing.B, msg []byte) {
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	var parsed interface{}
	for i := 0; i < b.N; i++ {
		if err := sonic.Unmarshal(msg, &parsed); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkTokenizer(b *testing.B, msg []byte) {
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	p, err := tokenizer.NewParser()
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		if err := p.Parse(msg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodingJSON(b *testing.B) {
	for _, n := range sizes {
		msg := genDocument(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) { benchmarkEncodingJSON(b, msg) })
	}
}

func BenchmarkJsoniter(b *testing.B) {
	for _, n := range sizes {
		msg := genDocument(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) { benchmarkJsoniter(b, msg) })
	}
}

func BenchmarkSonic(b *testing.B) {
	for _, n := range sizes {
		msg := genDocument(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) { benchmarkSonic(b, msg) })
	}
}

func BenchmarkTokenizer(b *testing.B) {
	for _, n := range sizes {
		msg := genDocument(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) { benchmarkTokenizer(b, msg) })
	}
}
