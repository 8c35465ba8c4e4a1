package engine

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// mariadbDSN builds the connection string through mysql.Config so escaping
// and option formatting stay the driver's problem.
func mariadbDSN(c Config) (string, string, error) {
	if c.Database == "" {
		return "", "", fmt.Errorf("engine: mariadb config requires a database name")
	}
	port := c.Port
	if port == 0 {
		port = 3306
	}
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, port)
	mc.DBName = c.Database
	mc.ParseTime = true
	mc.MultiStatements = true
	if c.AcquireTimeout > 0 {
		mc.Timeout = c.AcquireTimeout
	}
	return "mysql", mc.FormatDSN(), nil
}
