/*
Copyright © 2020 Marvin

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package datasource

// Datasource carries the connection settings of one validation target
// database. The conversion engine itself never connects anywhere, these
// settings exist for the optional post-conversion validation step.
type Datasource struct {
	DatasourceName string `toml:"datasource-name" json:"datasourceName"`
	DbType         string `toml:"db-type" json:"dbType"`
	Username       string `toml:"username" json:"username"`
	Password       string `toml:"password" json:"password"`
	Host           string `toml:"host" json:"host"`
	Port           uint64 `toml:"port" json:"port"`
	ConnectParams  string `toml:"connect-params" json:"connectParams"`
	ConnectCharset string `toml:"connect-charset" json:"connectCharset"`

	// oracle only
	ServiceName   string `toml:"service-name" json:"serviceName"`
	PdbName       string `toml:"pdb-name" json:"pdbName"`
	SessionParams string `toml:"session-params" json:"sessionParams"`
	// postgresql / mysql database name
	DbName string `toml:"db-name" json:"dbName"`
}
