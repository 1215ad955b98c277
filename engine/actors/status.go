package actors

import "sync"

var terminateChan chan struct{}
var waitGroup = &sync.WaitGroup{}

func SetTerminateChan(term chan struct{}) {
	terminateChan = term
}

func GetTerminateChan() chan struct{} {
	return terminateChan
}

// GetWaitGroup is used by long running minds to tell main when they have shut down.
func GetWaitGroup() *sync.WaitGroup {
	return waitGroup
}
