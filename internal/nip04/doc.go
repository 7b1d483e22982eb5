// Package nip04 implements direct-message content encryption: AES-256-CBC
// with PKCS#7 padding keyed by an ECDH shared secret, packaged as
// base64(ciphertext) + "?iv=" + base64(iv).
package nip04
