package hal

import "errors"

// ErrFlashWriteRequiresErase reports a write that would set cleared bits.
var ErrFlashWriteRequiresErase = errors.New("flash write requires erase")
