package utils

import "fmt"

// PartitionMap splits a contiguous index range (cells, DOFs) into
// ParallelDegree pieces with a maximum imbalance of one item. It stands in
// for a communicator's rank decomposition when running in-process.
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // begin and one-past-end index per partition
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.split1D(n)
	}
	return
}

func (pm *PartitionMap) split1D(threadNum int) (bucket [2]int) {
	var (
		Npart            = pm.MaxIndex / pm.ParallelDegree
		startAdd, endAdd int
		remainder        = pm.MaxIndex % pm.ParallelDegree
	)
	if remainder != 0 { // spread the remainder over the first partitions evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bucketNum int) (count int) {
	k1, k2 := pm.GetBucketRange(bucketNum)
	count = k2 - k1
	return
}

func (pm *PartitionMap) GetBucket(k int) (bucketNum int) {
	// Initial guess, then walk
	bucketNum = int(float64(pm.ParallelDegree*k) / float64(pm.MaxIndex))
	for !(pm.Partitions[bucketNum][0] <= k && pm.Partitions[bucketNum][1] > k) {
		if pm.Partitions[bucketNum][0] > k {
			bucketNum--
		} else {
			bucketNum++
		}
		if bucketNum == -1 || bucketNum == pm.ParallelDegree {
			panic(fmt.Sprintf("index %d outside of partitioned range %d", k, pm.MaxIndex))
		}
	}
	return
}

// MailBox carries per-partition messages to a receiving partition. During
// parallel assembly each worker posts its boundary (shared DOF)
// contributions, and the receiver merges them in deterministic partition
// order so repeated runs accumulate identically.
type MailBox[T any] struct {
	NP    int
	boxes []chan []T
}

func NewMailBox[T any](NP int) (mb *MailBox[T]) {
	mb = &MailBox[T]{
		NP:    NP,
		boxes: make([]chan []T, NP),
	}
	for n := 0; n < NP; n++ {
		mb.boxes[n] = make(chan []T, NP)
	}
	return
}

func (mb *MailBox[T]) Post(targetPartition int, msgs []T) {
	if targetPartition < 0 || targetPartition > mb.NP-1 {
		panic(fmt.Sprintf("target partition %d out of bounds", targetPartition))
	}
	mb.boxes[targetPartition] <- msgs
}

// Collect blocks until expected message batches have arrived at
// myPartition. Arrival order is not deterministic; callers that need a
// reproducible merge order must tag and sort the batches themselves.
func (mb *MailBox[T]) Collect(myPartition, expected int) (all [][]T) {
	all = make([][]T, 0, expected)
	for i := 0; i < expected; i++ {
		all = append(all, <-mb.boxes[myPartition])
	}
	return
}
