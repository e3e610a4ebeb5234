/*
Copyright © 2020 Marvin

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
// Package errconcurrent bounds a set of fallible tasks and reports only the
// ones that failed, the conversion service fans batch file conversions out
// through it.
package errconcurrent

import (
	"fmt"
	"sync"
)

type token struct{}

// A Group runs tasks concurrently under a goroutine cap. Unlike errgroup it
// never stops at the first error, every task runs and every failure is kept
// together with the task value that produced it.
type Group struct {
	wg sync.WaitGroup

	sem chan token

	mu *sync.Mutex

	Results []Result
}

// A Result pairs a failed task with its error, successful tasks leave no
// record.
type Result struct {
	Task interface{}
	Err  error
}

func (g *Group) done() {
	if g.sem != nil {
		<-g.sem
	}
	g.wg.Done()
}

// NewGroup returns an empty group. SetLimit must be called before Wait, the
// limiter channel is closed on Wait.
func NewGroup() *Group {
	return &Group{
		mu: new(sync.Mutex),
	}
}

// Wait blocks until every task scheduled through Go has returned, then
// returns the failed tasks. An empty slice means every task succeeded.
func (g *Group) Wait() []Result {
	g.wg.Wait()
	close(g.sem)
	return g.Results
}

// Go schedules f over task t in a new goroutine. It blocks while the number
// of active goroutines sits at the configured limit, the task value is
// handed back through Results when f fails.
func (g *Group) Go(t interface{}, f func(t interface{}) error) {
	if g.sem != nil {
		g.sem <- token{}
	}

	g.wg.Add(1)
	go func(t interface{}) {
		defer g.done()

		if err := f(t); err != nil {
			g.mu.Lock()
			g.Results = append(g.Results, Result{
				Task: t,
				Err:  err,
			})
			g.mu.Unlock()
		}
	}(t)
}

// SetLimit limits the number of active goroutines in this group to at most n.
// A negative value indicates no limit.
//
// Any subsequent call to the Go method will block until it can add an active
// goroutine without exceeding the configured limit.
//
// The limit must not be modified while any goroutines in the group are active.
func (g *Group) SetLimit(n int) {
	if n < 0 {
		g.sem = nil
		return
	}
	if len(g.sem) != 0 {
		panic(fmt.Errorf("errgroup: modify limit while %v goroutines in the group are still active", len(g.sem)))
	}
	g.sem = make(chan token, n)
}
