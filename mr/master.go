package mr

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	TaskMap    = "Map"
	TaskReduce = "Reduce"
	TaskWait   = "Wait"
	TaskExit   = "Exit"

	StatusIdle      = "idle"
	StatusInProcess = "in-process"
	StatusCompleted = "completed"
)

type Master struct {
	Splits []Split

	MapTasks    []Task
	ReduceTasks []Task

	NumMapFinished    int
	NumReduceFinished int
	NMap              int
	NReduce           int

	Intermediates [][]KeyValue
	Outputs       [][]KeyValue

	MapFinished    bool
	ReduceFinished bool

	err     error
	started time.Time

	mutex sync.Mutex
}

type Task struct {
	TaskType   string    // "Map", "Reduce", "Wait", "Exit"
	TaskStatus string    // "idle", "in-process", "completed"
	Timestamp  time.Time // start time
	TaskID     int
	NReduce    int
	Split      Split
}

func (m *Master) WorkerCallHandler(args *Args, reply *Reply) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	switch args.MessageType {
	case "request":
		if m.err != nil || m.ReduceFinished {
			reply.Task.TaskType = TaskExit
			return nil
		}
		if !m.MapFinished {
			if m.assign(m.MapTasks, args.WorkerID, reply) {
				return nil
			}
			reply.Task.TaskType = TaskWait
			return nil
		}
		if m.assign(m.ReduceTasks, args.WorkerID, reply) {
			return nil
		}
		reply.Task.TaskType = TaskWait
		return nil
	case "completed":
		logrus.WithFields(logrus.Fields{
			"task":     args.Task.TaskType,
			"id":       args.Task.TaskID,
			"worker":   args.WorkerID,
			"duration": time.Since(args.Task.Timestamp),
		}).Debug("task completed")
		if args.Task.TaskType == TaskMap {
			m.MapTasks[args.Task.TaskID].TaskStatus = StatusCompleted
			m.NumMapFinished++
			if m.NumMapFinished == m.NMap {
				m.MapFinished = true
				logrus.WithField("tasks", m.NMap).Debug("map phase finished")
			}
		} else {
			m.ReduceTasks[args.Task.TaskID].TaskStatus = StatusCompleted
			m.Outputs[args.Task.TaskID] = args.Output
			m.NumReduceFinished++
			if m.NumReduceFinished == m.NReduce {
				m.ReduceFinished = true
				logrus.WithFields(logrus.Fields{
					"tasks":   m.NReduce,
					"elapsed": time.Since(m.started),
				}).Debug("reduce phase finished")
			}
		}
		return nil
	case "failed":
		// the first failure wins; the run is abandoned
		if m.err == nil {
			m.err = args.Err
			logrus.WithFields(logrus.Fields{
				"task":   args.Task.TaskType,
				"id":     args.Task.TaskID,
				"worker": args.WorkerID,
			}).WithError(args.Err).Error("task failed")
		}
		return nil
	}

	return nil
}

// assign hands the first idle task in tasks to the caller.
func (m *Master) assign(tasks []Task, worker int, reply *Reply) bool {
	for index, task := range tasks {
		if task.TaskStatus == StatusIdle {
			tasks[index].TaskStatus = StatusInProcess
			tasks[index].Timestamp = time.Now()
			reply.Task = tasks[index]
			logrus.WithFields(logrus.Fields{
				"task":   task.TaskType,
				"id":     task.TaskID,
				"worker": worker,
			}).Debug("task assigned")
			return true
		}
	}
	return false
}

func (m *Master) SendIntermediates(set *IntermediateSet, reply *Reply) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if set.ReduceID < 0 || set.ReduceID >= m.NReduce {
		return fmt.Errorf("no reduce partition %d", set.ReduceID)
	}
	m.Intermediates[set.ReduceID] = append(m.Intermediates[set.ReduceID], set.KVs...)
	return nil
}

func (m *Master) GetIntermediates(args *Args, reply *ReplyIntermediates) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if args.Task.TaskID < 0 || args.Task.TaskID >= m.NReduce {
		return fmt.Errorf("no reduce partition %d", args.Task.TaskID)
	}
	if !m.MapFinished {
		return fmt.Errorf("reduce partition %d requested before map phase finished", args.Task.TaskID)
	}
	reply.KVs = m.Intermediates[args.Task.TaskID]
	return nil
}

func (m *Master) Done() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.ReduceFinished || m.err != nil
}

// Err returns the error of the first failed task, if any.
func (m *Master) Err() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.err
}

// Output returns the reduce output of every partition, sorted by key.
func (m *Master) Output() []KeyValue {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	var out []KeyValue
	for _, kvs := range m.Outputs {
		out = append(out, kvs...)
	}
	sort.Sort(ByKey(out))
	return out
}

func MakeMaster(splits []Split, nReduce int) *Master {
	m := Master{
		Splits:            splits,
		NReduce:           nReduce,
		NMap:              len(splits),
		Intermediates:     make([][]KeyValue, nReduce),
		Outputs:           make([][]KeyValue, nReduce),
		MapFinished:       len(splits) == 0,
		ReduceFinished:    false,
		NumMapFinished:    0,
		NumReduceFinished: 0,
		started:           time.Now(),
	}

	// create Map tasks
	for index, split := range splits {
		m.MapTasks = append(m.MapTasks, Task{
			TaskType:   TaskMap,
			TaskID:     index,
			TaskStatus: StatusIdle,
			Split:      split,
			NReduce:    nReduce,
		})
	}
	// create Reduce tasks
	for i := 0; i < m.NReduce; i++ {
		m.ReduceTasks = append(m.ReduceTasks, Task{
			TaskType:   TaskReduce,
			TaskID:     i,
			TaskStatus: StatusIdle,
			NReduce:    nReduce,
		})
	}

	return &m
}
