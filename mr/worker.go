package mr

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

type KeyValue struct {
	Key   string
	Value string
}

// ByKey for sorting by Key
type ByKey []KeyValue

func (a ByKey) Len() int           { return len(a) }
func (a ByKey) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByKey) Less(i, j int) bool { return a[i].Key < a[j].Key }

// MapFunc is called once per input line. key is "<split name>:<line number>".
type MapFunc func(key, value string) []KeyValue

// ReduceFunc folds every value seen for key into one output value.
type ReduceFunc func(key string, values []string) (string, error)

// Job bundles the user functions of one run. Combine is optional; when set
// it runs over each map task's output before the shuffle, so its output
// must be valid Reduce input.
type Job struct {
	Map     MapFunc
	Combine ReduceFunc
	Reduce  ReduceFunc
}

// use ihash(key) % NReduce to choose the reduce
// task number for each KeyValue emitted by Map.
func ihash(key string) int {
	return int(xxh3.HashString(key) & 0x7fffffff)
}

// Worker runs tasks handed out by m until the master tells it to exit.
func Worker(id int, m *Master, job Job, outputDir string) {
	log := logrus.WithField("worker", id)
	for {
		args := Args{MessageType: "request", WorkerID: id}
		reply := Reply{}
		if err := m.WorkerCallHandler(&args, &reply); err != nil {
			log.WithError(err).Error("request failed")
			return
		}

		var err error
		switch reply.Task.TaskType {
		case TaskMap:
			err = mapTask(m, job, reply.Task)
			if err == nil {
				err = taskCompleted(m, id, reply.Task, nil)
			}
		case TaskReduce:
			var out []KeyValue
			out, err = reduceTask(m, job.Reduce, reply.Task, outputDir)
			if err == nil {
				err = taskCompleted(m, id, reply.Task, out)
			}
		case TaskWait:
			waitTask()
		case TaskExit:
			log.Debug("worker exiting")
			return
		}
		if err != nil {
			if ferr := taskFailed(m, id, reply.Task, err); ferr != nil {
				log.WithError(ferr).Error("cannot report failure")
				return
			}
		}
	}
}

func mapTask(m *Master, job Job, task Task) error {
	buffer := make([][]KeyValue, task.NReduce)
	err := task.Split.Each(func(n int, line string) {
		key := task.Split.Name + ":" + strconv.Itoa(n)
		for _, kv := range job.Map(key, line) {
			id := ihash(kv.Key) % task.NReduce
			buffer[id] = append(buffer[id], kv)
		}
	})
	if err != nil {
		return fmt.Errorf("map task %d: %w", task.TaskID, err)
	}

	for i := 0; i < task.NReduce; i++ {
		kvs := buffer[i]
		if job.Combine != nil {
			combined, err := group(kvs, job.Combine)
			if err != nil {
				return fmt.Errorf("combine map task %d: %w", task.TaskID, err)
			}
			kvs = combined
		}
		if err := m.SendIntermediates(&IntermediateSet{ReduceID: i, KVs: kvs}, &Reply{}); err != nil {
			return fmt.Errorf("map task %d: %w", task.TaskID, err)
		}
	}
	return nil
}

// group sorts kvs by key and calls f once per distinct key.
func group(kvs []KeyValue, f ReduceFunc) ([]KeyValue, error) {
	sorted := make([]KeyValue, len(kvs))
	copy(sorted, kvs)
	sort.Sort(ByKey(sorted))

	var out []KeyValue
	i := 0
	for i < len(sorted) {
		j := i + 1
		for j < len(sorted) && sorted[j].Key == sorted[i].Key {
			j++
		}
		values := make([]string, 0, j-i)
		for k := i; k < j; k++ {
			values = append(values, sorted[k].Value)
		}
		output, err := f(sorted[i].Key, values)
		if err != nil {
			return nil, err
		}
		out = append(out, KeyValue{Key: sorted[i].Key, Value: output})
		i = j
	}
	return out, nil
}

func reduceTask(m *Master, reducef ReduceFunc, task Task, outputDir string) ([]KeyValue, error) {
	reply := ReplyIntermediates{}
	if err := m.GetIntermediates(&Args{Task: task}, &reply); err != nil {
		return nil, fmt.Errorf("reduce task %d: %w", task.TaskID, err)
	}

	out, err := group(reply.KVs, reducef)
	if err != nil {
		return nil, fmt.Errorf("reduce task %d: %w", task.TaskID, err)
	}
	if outputDir != "" {
		if err := storeOutputFile(out, filepath.Join(outputDir, outputFilename(task.TaskID))); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func outputFilename(reduceID int) string {
	return fmt.Sprintf("mr-out-%v", reduceID)
}

func storeOutputFile(kvs []KeyValue, filename string) error {
	ofile, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create %v: %w", filename, err)
	}
	defer ofile.Close()

	w := bufio.NewWriter(ofile)
	for _, kv := range kvs {
		// this is the correct format for each line of Reduce output.
		fmt.Fprintf(w, "%v %v\n", kv.Key, kv.Value)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot write %v: %w", filename, err)
	}
	return nil
}

const waitInterval = 5 * time.Millisecond

func waitTask() {
	time.Sleep(waitInterval)
}

func taskCompleted(m *Master, worker int, task Task, output []KeyValue) error {
	args := Args{MessageType: "completed", Task: task, WorkerID: worker, Output: output}
	return m.WorkerCallHandler(&args, &Reply{})
}

func taskFailed(m *Master, worker int, task Task, err error) error {
	args := Args{MessageType: "failed", Task: task, WorkerID: worker, Err: err}
	return m.WorkerCallHandler(&args, &Reply{})
}
