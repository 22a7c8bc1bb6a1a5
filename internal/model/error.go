package model

import "errors"

var ErrorUserNotFound = errors.New("user not found")
var ErrorLoginTaken = errors.New("login already taken")
var ErrorUnknownStoreDriver = errors.New("unknown store driver")
