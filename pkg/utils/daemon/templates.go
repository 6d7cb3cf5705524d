package daemon

const launchdLabel = "cc.chlc.xbat"

const launchdPlistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>cc.chlc.xbat</string>
	<key>ProgramArguments</key>
	<array>
		<string>/path/to/xbat</string>
		<string>serve</string>
		<string>--config</string>
		<string>/path/to/config</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
</dict>
</plist>
`

const systemdUnitTemplate = `[Unit]
Description=xbat battery snapshot server
After=dbus.service

[Service]
ExecStart=/path/to/xbat serve --config /path/to/config
Restart=on-failure

[Install]
WantedBy=multi-user.target
`
