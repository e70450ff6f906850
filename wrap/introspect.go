package wrap

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/pawurb/channels-console-go/collector"
)

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

func typeSize[T any]() uint64 {
	var zero T
	return uint64(unsafe.Sizeof(zero))
}

func elapsed() uint64 {
	return uint64(time.Since(collector.Global().StartTime()).Nanoseconds())
}

func debugLog[T any](v T, logging bool) *string {
	if !logging {
		return nil
	}
	s := fmt.Sprintf("%+v", v)
	return &s
}
