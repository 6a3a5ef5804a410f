// Package snowflake generates time-ordered 64-bit ids: 42 bits of unix
// millisecond timestamp, 10 bits of worker id, 12 bits of per-millisecond
// increment. Ids from one worker are strictly increasing, which is what
// gives message ids their append order.
package snowflake

import (
	"fmt"
	"sync"
	"time"
)

const (
	timestampBits int64 = 42
	workerBits    int64 = 10
	incrementBits       = 64 - timestampBits - workerBits // 12

	timestampShift = workerBits + incrementBits
	workerShift    = incrementBits

	maxWorker    = int64(1)<<workerBits - 1
	maxIncrement = int64(1)<<incrementBits - 1
)

var (
	mutex sync.Mutex

	lastTimestamp int64
	lastIncrement int64

	workerID    int64
	hasWorkerID bool
)

func Setup(id int64) error {
	if id > maxWorker {
		return fmt.Errorf("worker ID value exceeds maximum value of [%d]", maxWorker)
	}
	if hasWorkerID {
		return fmt.Errorf("worker ID for snowflake generator has been already set")
	}

	workerID = id
	hasWorkerID = true
	return nil
}

func Generate() (int64, error) {
	mutex.Lock()
	defer mutex.Unlock()

	timestamp := time.Now().UnixMilli()
	if timestamp == lastTimestamp {
		lastIncrement += 1
		if lastIncrement > maxIncrement {
			return 0, fmt.Errorf("increment overflow after increment reached %d", lastIncrement)
		}
	} else {
		lastIncrement = 0
		lastTimestamp = timestamp
	}

	return timestamp<<timestampShift | workerID<<workerShift | lastIncrement, nil
}

func ExtractTimestamp(id int64) int64 {
	return id >> timestampShift
}
