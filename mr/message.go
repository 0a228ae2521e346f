package mr

// Messages exchanged between the master and its worker goroutines.
// Workers call Master.WorkerCallHandler directly; nothing crosses a
// process boundary.

type Args struct {
	MessageType string // "request", "completed", "failed"
	Task        Task
	WorkerID    int
	Output      []KeyValue // reduce output, set with "completed"
	Err         error      // set with "failed"
}

type Reply struct {
	Task Task
}

// IntermediateSet is one map task's contribution to one reduce partition.
type IntermediateSet struct {
	ReduceID int
	KVs      []KeyValue
}

type ReplyIntermediates struct {
	KVs []KeyValue
}
