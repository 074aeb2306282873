// Package blob implements the client blob: a small document of subaccount names
// and transaction memos that is stored on a server as an encrypted,
// authenticated envelope the server cannot read.
package blob

import (
	"maps"
	"strconv"
)

// Namespace — индекс пространства имён внутри документа.
// В сериализованном виде хранится как ключ JSON-объекта.
type Namespace uint32

const (
	// SubaccountNames — имена субаккаунтов, ключ — десятичный номер субаккаунта.
	SubaccountNames Namespace = 0
	// TxMemos — заметки к транзакциям, ключ — hex-идентификатор транзакции.
	TxMemos Namespace = 1
)

// knownNamespaces всегда присутствуют в сериализованном документе.
var knownNamespaces = []Namespace{SubaccountNames, TxMemos}

// Default возвращает значение по умолчанию для пространства имён.
func (ns Namespace) Default() string { return "" }

func (ns Namespace) key() string { return strconv.FormatUint(uint64(ns), 10) }

// Document — клиентский документ. Значения по умолчанию в нём не хранятся:
// запись значения по умолчанию удаляет ключ.
//
// Document не синхронизирован; при совместном использовании доступ
// сериализует вызывающий код.
type Document struct {
	namespaces map[Namespace]map[string]string
}

// NewDocument создаёт пустой документ.
func NewDocument() *Document {
	return &Document{namespaces: make(map[Namespace]map[string]string)}
}

// Set записывает value под key. Значение по умолчанию удаляет key.
func (d *Document) Set(ns Namespace, key, value string) {
	if value == ns.Default() {
		delete(d.namespaces[ns], key)
		return
	}
	if d.namespaces == nil {
		d.namespaces = make(map[Namespace]map[string]string)
	}
	m, ok := d.namespaces[ns]
	if !ok {
		m = make(map[string]string)
		d.namespaces[ns] = m
	}
	m[key] = value
}

// Get возвращает значение по key или значение по умолчанию.
func (d *Document) Get(ns Namespace, key string) string {
	if v, ok := d.namespaces[ns][key]; ok {
		return v
	}
	return ns.Default()
}

// Len возвращает число записей в пространстве имён.
func (d *Document) Len(ns Namespace) int { return len(d.namespaces[ns]) }

// Entries возвращает копию записей пространства имён.
func (d *Document) Entries(ns Namespace) map[string]string {
	out := make(map[string]string, len(d.namespaces[ns]))
	maps.Copy(out, d.namespaces[ns])
	return out
}

// SetSubaccountName задаёт имя субаккаунта; пустое имя удаляет запись.
func (d *Document) SetSubaccountName(subaccount uint32, name string) {
	d.Set(SubaccountNames, strconv.FormatUint(uint64(subaccount), 10), name)
}

// GetSubaccountName возвращает имя субаккаунта или "".
func (d *Document) GetSubaccountName(subaccount uint32) string {
	return d.Get(SubaccountNames, strconv.FormatUint(uint64(subaccount), 10))
}

// SetTxMemo задаёт заметку к транзакции; пустая заметка удаляет запись.
func (d *Document) SetTxMemo(txhashHex, memo string) {
	d.Set(TxMemos, txhashHex, memo)
}

// GetTxMemo возвращает заметку к транзакции или "".
func (d *Document) GetTxMemo(txhashHex string) string {
	return d.Get(TxMemos, txhashHex)
}
