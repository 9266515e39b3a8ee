// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"iter"
	"log"
	"os"
	"runtime"
	"sync"
	"syscall"
	"testing"
	"time"
)

func waitGroup(wg *sync.WaitGroup) {
	wg.Wait() // want "yields"
}

func cond(c *sync.Cond) {
	c.Wait() // want "yields"
}

func sleep() {
	time.Sleep(time.Millisecond) // want "yields"
}

func exit() {
	os.Exit(1) // want "exits"
}

func fatal(l *log.Logger) {
	log.Fatalln() // want "exits"

	l.Fatalf("") // want "exits"
}

func builtin() {
	panic("") // want "exits"
}

func shadowed() {
	panic := log.Print

	panic("")
}

func goexit() {
	runtime.Goexit() // want "exits"

	syscall.Exit(1) // want "exits"
}

func gosched() {
	runtime.Gosched() // want "yields"
}

func skip(tb testing.TB) {
	tb.SkipNow() // want "exits"
}

func generic[T any](T) {}

func instantiated() {
	(generic[int])(0)
}

func seq(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range n {
			if !yield(i) { // want "yields"
				return
			}
		}
	}
}

func notYield(f func(int) bool) {
	next := f

	_ = next(1)
}

func plain() {
	println("hello")
}
