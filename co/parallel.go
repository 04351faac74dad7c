// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Parallel executes the queued functions concurrently and returns a
// channel closed when all of them have finished. The fetcher should
// close over the queue and push work onto it, then return.
func Parallel(fetch func(queue chan<- func())) <-chan struct{} {
	queue := make(chan func(), 16)
	defer close(queue)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for f := range queue {
			wg.Add(1)
			go func(f func()) {
				defer wg.Done()
				f()
			}(f)
		}
		wg.Wait()
	}()

	fetch(queue)
	return done
}
