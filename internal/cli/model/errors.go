package model

import "errors"

var errNoClipboard = errors.New("no clipboard tool available (install wl-clipboard or xclip)")
