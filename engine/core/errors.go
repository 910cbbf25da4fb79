package core

import (
	"errors"
)

var (
	// setup failures, fatal for the application
	ErrNoAdapter        = errors.New("no compatible GPU adapter for the surface")
	ErrNoDevice         = errors.New("failed to request a logical GPU device")
	ErrSurfaceConfigure = errors.New("surface configuration rejected")
	ErrInvalidShader    = errors.New("invalid shader source")
	ErrPipelineCreate   = errors.New("failed to create render pipeline")

	// frame level failures
	ErrSurfaceUnavailable = errors.New("surface has no presentable texture")
	ErrPipelineNotReady   = errors.New("render pipeline not built")

	ErrPopulationOutOfRange = errors.New("population size out of range")
	ErrBufferCreate         = errors.New("failed to create render buffer")
	ErrBufferOverflow       = errors.New("write exceeds render buffer size")
	ErrAlreadyReleased      = errors.New("resource already released")
)
